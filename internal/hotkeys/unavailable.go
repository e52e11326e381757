package hotkeys

import "moonwalk/internal/core/macro"

// UnavailableStatus is shown when no listener could be created at startup.
const UnavailableStatus = "Hotkey manager not available"

type unavailable struct {
	err     error
	presses chan ID
}

// Unavailable returns a listener whose registrations always fail with err.
func Unavailable(err error) Listener {
	return &unavailable{err: err, presses: make(chan ID)}
}

func (u *unavailable) Register(macro.Key) (ID, error) { return 0, u.err }
func (u *unavailable) UnregisterAll() error           { return nil }
func (u *unavailable) Presses() <-chan ID             { return u.presses }
func (u *unavailable) Close() error                   { return nil }

// IsUnavailable reports whether l was built by Unavailable.
func IsUnavailable(l Listener) bool {
	_, ok := l.(*unavailable)
	return ok
}
