//go:build !linux && !windows

package main

import (
	"fmt"
	"strings"

	"moonwalk/internal/adapters/designhotkey"
	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" || backend == "auto" {
		return "auto", nil
	}
	return "", fmt.Errorf("invalid --backend %q (unsupported platform)", value)
}

func openInjector(_ string, _ macro.Logger) (macro.Injector, error) {
	return macro.Unsupported{}, nil
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
	return fmt.Errorf("input device listing is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend."
}
