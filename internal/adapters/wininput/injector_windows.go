//go:build windows

package wininput

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"moonwalk/internal/core/macro"
)

const (
	inputKeyboard     = 1
	keyeventfKeyUp    = 0x0002
	keyeventfScancode = 0x0008
	mapvkVKToVSC      = 0
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSendInput      = user32.NewProc("SendInput")
	procMapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

type keyboardInput struct {
	WVK         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors INPUT. MOUSEINPUT is the largest union member and is
// 8 bytes longer than KEYBDINPUT on every architecture.
type input struct {
	Type uint32
	Ki   keyboardInput
	_    [8]byte
}

// Injector emits hardware scan codes through SendInput so games reading
// raw input see the keys.
type Injector struct {
	logger macro.Logger
}

func NewInjector(logger macro.Logger) (*Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	if err := procMapVirtualKeyW.Find(); err != nil {
		return nil, fmt.Errorf("MapVirtualKeyW unavailable: %w", err)
	}
	return &Injector{logger: logger}, nil
}

func (i *Injector) KeyDown(key macro.Key) error {
	return i.send(key, false)
}

func (i *Injector) KeyUp(key macro.Key) error {
	return i.send(key, true)
}

func (i *Injector) Close() error {
	return nil
}

func (i *Injector) send(key macro.Key, up bool) error {
	vk, ok := KeyToVK(key)
	if !ok {
		return fmt.Errorf("no virtual key for %s", key)
	}
	scan := scanCode(vk)

	flags := uint32(keyeventfScancode)
	if up {
		flags |= keyeventfKeyUp
	}
	in := input{
		Type: inputKeyboard,
		Ki: keyboardInput{
			WScan:   scan,
			DwFlags: flags,
		},
	}

	sent, _, callErr := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if sent != 1 {
		if callErr != nil && callErr != windows.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of 1 inputs", sent)
	}
	i.logger.Debug("sent key", "vk", FormatVK(vk), "scan", scan, "up", up)
	return nil
}

func scanCode(vk uint16) uint16 {
	r, _, _ := procMapVirtualKeyW.Call(uintptr(vk), uintptr(mapvkVKToVSC))
	if r != 0 {
		return uint16(r)
	}
	return fallbackScanCodes[vk]
}
