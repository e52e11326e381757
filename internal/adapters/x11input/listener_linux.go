//go:build linux

package x11input

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

// Listener grabs keys on the root window with any modifier state and
// reports their presses. It owns its own X11 connection.
type Listener struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	logger  macro.Logger

	mu          sync.RWMutex
	nextID      hotkeys.ID
	keyToID     map[xproto.Keycode]hotkeys.ID
	grabbedKeys []xproto.Keycode

	presses  chan hotkeys.ID
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewListener(logger macro.Logger) (*Listener, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := openDisplay()
	if err != nil {
		return nil, err
	}

	l := &Listener{
		xu:      xu,
		conn:    xu.Conn(),
		rootWin: xu.RootWin(),
		logger:  logger,
		keyToID: make(map[xproto.Keycode]hotkeys.ID),
		presses: hotkeys.NewQueue(),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go l.eventLoop()
	return l, nil
}

func (l *Listener) Register(key macro.Key) (hotkeys.ID, error) {
	keycodes, err := resolveKeycodes(l.xu, key)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, keycode := range keycodes {
		if _, taken := l.keyToID[keycode]; taken {
			return 0, fmt.Errorf("X11 key %s is already bound", key)
		}
	}

	l.nextID++
	id := l.nextID
	for _, keycode := range keycodes {
		if err := xproto.GrabKeyChecked(
			l.conn,
			false,
			l.rootWin,
			xproto.ModMaskAny,
			keycode,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check(); err != nil {
			return 0, err
		}
		l.grabbedKeys = append(l.grabbedKeys, keycode)
		l.keyToID[keycode] = id
	}

	l.logger.Debug("grabbed X11 key", "key", key, "keycodes", keycodes, "id", id)
	return id, nil
}

func (l *Listener) UnregisterAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ungrabAllLocked()
	return nil
}

func (l *Listener) Presses() <-chan hotkeys.ID {
	return l.presses
}

func (l *Listener) Close() error {
	l.stopOnce.Do(func() {
		close(l.stopCh)

		l.mu.Lock()
		l.ungrabAllLocked()
		l.conn.Close()
		l.mu.Unlock()

		<-l.doneCh
	})
	return nil
}

func (l *Listener) ungrabAllLocked() {
	for _, keycode := range l.grabbedKeys {
		xproto.UngrabKey(l.conn, keycode, l.rootWin, xproto.ModMaskAny)
	}
	l.grabbedKeys = nil
	l.keyToID = make(map[xproto.Keycode]hotkeys.ID)
}

func (l *Listener) lookup(keycode xproto.Keycode) (hotkeys.ID, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.keyToID[keycode]
	return id, ok
}

func (l *Listener) eventLoop() {
	defer close(l.doneCh)

	for {
		event, xerr := l.conn.WaitForEvent()
		if xerr != nil {
			select {
			case <-l.stopCh:
				return
			default:
			}
			l.logger.Warn("X11 event error", "err", xerr)
			continue
		}
		if event == nil {
			return
		}

		ev, ok := event.(xproto.KeyPressEvent)
		if !ok {
			continue
		}
		if id, ok := l.lookup(ev.Detail); ok {
			if !hotkeys.Deliver(l.presses, id) {
				l.logger.Warn("hotkey queue full, dropping press", "id", id)
			}
		}
	}
}
