//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// VirtualKeyboardName is the uinput device name; the listener skips it so
// injected keys never trigger hotkeys.
const VirtualKeyboardName = "moonwalk-keyboard"

type DeviceInfo struct {
	Path       string
	Name       string
	IsVirtual  bool
	IsKeyboard bool
}

func ListInputDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := deviceName(dev, path.Name)
		devices = append(devices, DeviceInfo{
			Path:       path.Path,
			Name:       name,
			IsVirtual:  deviceIsVirtual(dev, name),
			IsKeyboard: deviceIsKeyboard(dev),
		})
		_ = dev.Close()
	}

	return devices, nil
}

// openKeyboards opens every physical keyboard in non-blocking mode.
func openKeyboards() ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]*evdev.InputDevice, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := deviceName(dev, path.Name)
		if deviceIsVirtual(dev, name) || !deviceIsKeyboard(dev) {
			_ = dev.Close()
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable keyboards found; check permissions on /dev/input")
	}
	return devices, nil
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceName(device *evdev.InputDevice, fallback string) string {
	if actual, err := device.Name(); err == nil && actual != "" {
		return actual
	}
	return fallback
}

func deviceIsVirtual(device *evdev.InputDevice, name string) bool {
	id, err := device.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool", VirtualKeyboardName} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// deviceIsKeyboard filters out mice and power buttons, which also report
// EV_KEY.
func deviceIsKeyboard(device *evdev.InputDevice) bool {
	var hasLetters, hasDigits bool
	for _, code := range device.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A:
			hasLetters = true
		case evdev.KEY_1:
			hasDigits = true
		}
	}
	return hasLetters && hasDigits
}
