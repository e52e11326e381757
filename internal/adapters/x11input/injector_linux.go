//go:build linux

package x11input

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"

	"moonwalk/internal/core/macro"
)

// Injector fakes key events through the XTEST extension.
type Injector struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	logger  macro.Logger

	mu       sync.Mutex
	keycodes map[macro.Key]xproto.Keycode
}

func NewInjector(logger macro.Logger) (*Injector, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := openDisplay()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Injector{
		xu:       xu,
		conn:     conn,
		rootWin:  xu.RootWin(),
		logger:   logger,
		keycodes: make(map[macro.Key]xproto.Keycode),
	}, nil
}

func (i *Injector) KeyDown(key macro.Key) error {
	return i.fake(key, xproto.KeyPress)
}

func (i *Injector) KeyUp(key macro.Key) error {
	return i.fake(key, xproto.KeyRelease)
}

func (i *Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.conn != nil {
		i.conn.Close()
		i.conn = nil
	}
	return nil
}

func (i *Injector) fake(key macro.Key, eventType byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.conn == nil {
		return fmt.Errorf("X11 connection closed")
	}
	keycode, err := i.keycodeLocked(key)
	if err != nil {
		return err
	}

	if err := xtest.FakeInputChecked(
		i.conn,
		eventType,
		byte(keycode),
		xproto.TimeCurrentTime,
		i.rootWin,
		0,
		0,
		0,
	).Check(); err != nil {
		return err
	}
	i.conn.Sync()
	return nil
}

func (i *Injector) keycodeLocked(key macro.Key) (xproto.Keycode, error) {
	if keycode, ok := i.keycodes[key]; ok {
		return keycode, nil
	}
	keycodes, err := resolveKeycodes(i.xu, key)
	if err != nil {
		return 0, err
	}
	i.keycodes[key] = keycodes[0]
	return keycodes[0], nil
}
