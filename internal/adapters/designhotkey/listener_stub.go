//go:build !windows && !darwin

package designhotkey

import (
	"fmt"

	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

type Listener struct{}

func NewListener(logger macro.Logger) (*Listener, error) {
	return nil, fmt.Errorf("system hotkeys are only available on Windows and macOS")
}

func (l *Listener) Register(macro.Key) (hotkeys.ID, error) {
	return 0, fmt.Errorf("system hotkeys are only available on Windows and macOS")
}

func (l *Listener) UnregisterAll() error { return nil }

func (l *Listener) Presses() <-chan hotkeys.ID { return nil }

func (l *Listener) Close() error { return nil }
