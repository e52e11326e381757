//go:build windows || darwin

package designhotkey

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

type registration struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
}

// Listener registers system-wide hotkeys without modifiers and forwards
// their key-down events. One goroutine runs per registered key.
type Listener struct {
	logger macro.Logger

	mu      sync.Mutex
	nextID  hotkeys.ID
	active  map[hotkeys.ID]registration
	presses chan hotkeys.ID
	wg      sync.WaitGroup
}

func NewListener(logger macro.Logger) (*Listener, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Listener{
		logger:  logger,
		active:  make(map[hotkeys.ID]registration),
		presses: hotkeys.NewQueue(),
	}, nil
}

func (l *Listener) Register(key macro.Key) (hotkeys.ID, error) {
	native, ok := keyToHotkey(key)
	if !ok {
		return 0, fmt.Errorf("no system hotkey for %s", key)
	}

	hk := hotkey.New(nil, native)
	if err := hk.Register(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	reg := registration{hk: hk, stop: make(chan struct{})}
	l.active[id] = reg

	l.wg.Add(1)
	go l.forward(id, reg)

	l.logger.Debug("registered hotkey", "key", key, "id", id)
	return id, nil
}

func (l *Listener) forward(id hotkeys.ID, reg registration) {
	defer l.wg.Done()
	keydown := reg.hk.Keydown()
	for {
		select {
		case <-reg.stop:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			if !hotkeys.Deliver(l.presses, id) {
				l.logger.Warn("hotkey queue full, dropping press", "id", id)
			}
		}
	}
}

func (l *Listener) UnregisterAll() error {
	l.mu.Lock()
	regs := l.active
	l.active = make(map[hotkeys.ID]registration)
	l.mu.Unlock()

	var errs []error
	for id, reg := range regs {
		close(reg.stop)
		if err := reg.hk.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("unregister hotkey %d: %w", id, err))
		}
	}
	l.wg.Wait()
	return errors.Join(errs...)
}

func (l *Listener) Presses() <-chan hotkeys.ID {
	return l.presses
}

func (l *Listener) Close() error {
	return l.UnregisterAll()
}

func keyToHotkey(key macro.Key) (hotkey.Key, bool) {
	switch {
	case key.IsDigit():
		return digitKeys[key-macro.Key0], true
	case key.IsLetter():
		return letterKeys[key-macro.KeyA], true
	case key.IsFunction():
		return functionKeys[key-macro.KeyF1], true
	default:
		return 0, false
	}
}

var digitKeys = [...]hotkey.Key{
	hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
	hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
}

var letterKeys = [...]hotkey.Key{
	hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE, hotkey.KeyF,
	hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ, hotkey.KeyK, hotkey.KeyL,
	hotkey.KeyM, hotkey.KeyN, hotkey.KeyO, hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR,
	hotkey.KeyS, hotkey.KeyT, hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX,
	hotkey.KeyY, hotkey.KeyZ,
}

var functionKeys = [...]hotkey.Key{
	hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4, hotkey.KeyF5, hotkey.KeyF6,
	hotkey.KeyF7, hotkey.KeyF8, hotkey.KeyF9, hotkey.KeyF10, hotkey.KeyF11, hotkey.KeyF12,
}
