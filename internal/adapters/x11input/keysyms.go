package x11input

import "moonwalk/internal/core/macro"

// KeyString returns the keysym name keybind resolves to keycodes.
func KeyString(key macro.Key) (string, bool) {
	switch {
	case key == macro.KeyPeriod:
		return "period", true
	case key == macro.KeyLeftShift:
		return "Shift_L", true
	case key == macro.KeyLeftCtrl:
		return "Control_L", true
	case key.IsFunction():
		// keysym names are upper case: F1..F12
		return "F" + key.String()[1:], true
	case key.IsDigit(), key.IsLetter():
		return key.String(), true
	default:
		return "", false
	}
}
