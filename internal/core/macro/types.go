package macro

import (
	"fmt"
	"time"
)

// Mode is how a single key is driven.
type Mode int

const (
	// ModeTap presses and releases after TapHold.
	ModeTap Mode = iota
	// ModeHold presses without releasing.
	ModeHold
	// ModeRelease releases a previously held key.
	ModeRelease
)

func (m Mode) String() string {
	switch m {
	case ModeTap:
		return "tap"
	case ModeHold:
		return "hold"
	case ModeRelease:
		return "release"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Injector sends synthetic key events through the host OS.
// Its only failure mode is the OS rejecting the call.
type Injector interface {
	KeyDown(key Key) error
	KeyUp(key Key) error
	Close() error
}

// Sleeper blocks the calling goroutine. clockwork.Clock satisfies it.
type Sleeper interface {
	Sleep(d time.Duration)
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Action identifies one of the two fixed macros.
type Action int

const (
	ActionOffset Action = iota
	ActionClip
)

func (a Action) String() string {
	switch a {
	case ActionOffset:
		return "offset"
	case ActionClip:
		return "clip"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Title is the name used in status text and buttons.
func (a Action) Title() string {
	switch a {
	case ActionOffset:
		return "COM Offset"
	case ActionClip:
		return "Wall Clip"
	default:
		return a.String()
	}
}

func ParseAction(value string) (Action, error) {
	switch value {
	case "offset", "com", "com-offset":
		return ActionOffset, nil
	case "clip", "wall-clip":
		return ActionClip, nil
	default:
		return ActionOffset, fmt.Errorf("unknown action %q (expected offset|clip)", value)
	}
}

// InjectionError wraps the first OS rejection seen during a macro run.
type InjectionError struct {
	Action Action
	Key    Key
	Mode   Mode
	Err    error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("failed to %s key %s: %v", e.Mode, e.Key, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}
