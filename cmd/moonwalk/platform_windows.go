//go:build windows

package main

import (
	"fmt"
	"strings"

	"moonwalk/internal/adapters/designhotkey"
	"moonwalk/internal/adapters/wininput"
	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows)", value)
	}
}

func openInjector(_ string, logger macro.Logger) (macro.Injector, error) {
	return wininput.NewInjector(logger)
}

func openListener(_ string, logger macro.Logger) hotkeys.Listener {
	listener, err := designhotkey.NewListener(logger)
	if err != nil {
		logger.Warn("Hotkey listener unavailable", "err", err)
		return hotkeys.Unavailable(err)
	}
	return listener
}

func listInputDevices(_ string) error {
	for _, key := range wininput.MappedKeys() {
		vk, _ := wininput.KeyToVK(key)
		fmt.Printf("%s: %s\n", key, wininput.FormatVK(vk))
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied sending input. Games running as Administrator only accept input from elevated processes; run as Administrator."
}
