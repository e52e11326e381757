//go:build linux

package linuxinput

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"moonwalk/internal/core/macro"
)

// Injector is a uinput keyboard that can emit every macro key.
type Injector struct {
	mu     sync.Mutex
	dev    *evdev.InputDevice
	logger macro.Logger
}

func NewInjector(logger macro.Logger) (*Injector, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x2,
		Version: 1,
	}
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: keyboardCodes(),
	}

	dev, err := evdev.CreateDevice(VirtualKeyboardName, id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to create uinput keyboard: %w", err)
	}
	logger.Debug("created uinput keyboard", "name", VirtualKeyboardName)
	return &Injector{dev: dev, logger: logger}, nil
}

func (i *Injector) KeyDown(key macro.Key) error {
	return i.write(key, 1)
}

func (i *Injector) KeyUp(key macro.Key) error {
	return i.write(key, 0)
}

func (i *Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.dev == nil {
		return nil
	}
	err := i.dev.Close()
	i.dev = nil
	return err
}

func (i *Injector) write(key macro.Key, value int32) error {
	code, ok := KeyToCode(key)
	if !ok {
		return fmt.Errorf("no evdev code for %s", key)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.dev == nil {
		return fmt.Errorf("uinput keyboard closed")
	}

	events := []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: code, Value: value},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	}
	for idx := range events {
		if err := i.dev.WriteOne(&events[idx]); err != nil {
			return err
		}
	}
	return nil
}
