//go:build linux

package linuxinput

import (
	"fmt"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

// Listener reads physical keyboards directly, so it works under Wayland
// where global grabs are not available. Devices are never grabbed.
type Listener struct {
	devices []*evdev.InputDevice
	logger  macro.Logger

	mu       sync.RWMutex
	nextID   hotkeys.ID
	codeToID map[evdev.EvCode]hotkeys.ID

	presses   chan hotkeys.ID
	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

func NewListener(logger macro.Logger) (*Listener, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	devices, err := openKeyboards()
	if err != nil {
		return nil, err
	}

	l := &Listener{
		devices:  devices,
		logger:   logger,
		codeToID: make(map[evdev.EvCode]hotkeys.ID),
		presses:  hotkeys.NewQueue(),
		stopCh:   make(chan struct{}),
	}
	for _, dev := range devices {
		logger.Info("Listening for hotkeys", "path", dev.Path(), "name", deviceName(dev, ""))
		l.readersWG.Add(1)
		go l.readLoop(dev)
	}
	return l, nil
}

func (l *Listener) Register(key macro.Key) (hotkeys.ID, error) {
	code, ok := KeyToCode(key)
	if !ok {
		return 0, fmt.Errorf("no evdev code for %s", key)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.codeToID[code]; taken {
		return 0, fmt.Errorf("%s is already bound", FormatCodeName(code))
	}
	l.nextID++
	l.codeToID[code] = l.nextID
	return l.nextID, nil
}

func (l *Listener) UnregisterAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.codeToID = make(map[evdev.EvCode]hotkeys.ID)
	return nil
}

func (l *Listener) Presses() <-chan hotkeys.ID {
	return l.presses
}

func (l *Listener) Close() error {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		for _, dev := range l.devices {
			_ = dev.Close()
		}
		l.readersWG.Wait()
	})
	return nil
}

func (l *Listener) lookup(code evdev.EvCode) (hotkeys.ID, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.codeToID[code]
	return id, ok
}

func (l *Listener) stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

func (l *Listener) readLoop(dev *evdev.InputDevice) {
	defer l.readersWG.Done()

	path := dev.Path()
	for {
		event, err := dev.ReadOne()
		if err != nil {
			if l.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !sleepWithStop(l.stopCh, 10*time.Millisecond) {
					return
				}
				continue
			}
			l.logger.Warn("Read failed", "path", path, "err", err)
			if !sleepWithStop(l.stopCh, 100*time.Millisecond) {
				return
			}
			continue
		}
		if event == nil || event.Type != evdev.EV_KEY || event.Value != 1 {
			continue
		}

		if id, ok := l.lookup(event.Code); ok {
			if key, known := KeyFromCode(event.Code); known {
				l.logger.Debug("hotkey down", "path", path, "key", key)
			}
			if !hotkeys.Deliver(l.presses, id) {
				l.logger.Warn("hotkey queue full, dropping press", "id", id)
			}
		}
	}
}
