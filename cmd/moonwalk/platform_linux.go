//go:build linux

package main

import (
	"fmt"
	"os"
	"strings"

	"moonwalk/internal/adapters/linuxinput"
	"moonwalk/internal/adapters/x11input"
	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "wayland", "x11", "evdev":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|wayland|x11)", value)
	}
}

func openInjector(backend string, logger macro.Logger) (macro.Injector, error) {
	switch resolveLinuxBackend(backend) {
	case "x11":
		return x11input.NewInjector(logger)
	default:
		return linuxinput.NewInjector(logger)
	}
}

func openListener(backend string, logger macro.Logger) hotkeys.Listener {
	var (
		listener hotkeys.Listener
		err      error
	)
	switch resolveLinuxBackend(backend) {
	case "x11":
		listener, err = x11input.NewListener(logger)
	default:
		listener, err = linuxinput.NewListener(logger)
	}
	if err != nil {
		logger.Warn("Hotkey listener unavailable", "err", err)
		return hotkeys.Unavailable(err)
	}
	return listener
}

func listInputDevices(_ string) error {
	devices, err := linuxinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		virtualTag := "physical"
		if dev.IsVirtual {
			virtualTag = "virtual"
		}
		keyboardTag := "non-keyboard"
		if dev.IsKeyboard {
			keyboardTag = "keyboard"
		}
		fmt.Printf("%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, keyboardTag)
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. On Wayland use root/udev for /dev/input + /dev/uinput. On X11 ensure an active X11 session and DISPLAY is set."
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice == "evdev" {
		choice = "wayland"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}
