package macro

import "fmt"

// Key is a layout-independent key identifier. Adapters translate it to
// the host's native code (virtual key, evdev code, X11 keysym).
type Key uint16

const (
	KeyNone Key = iota
	KeyPeriod
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeftShift
	KeyLeftCtrl
)

// AllKeys lists every key an adapter must be able to emit or bind.
func AllKeys() []Key {
	keys := make([]Key, 0, int(KeyLeftCtrl))
	for k := KeyPeriod; k <= KeyLeftCtrl; k++ {
		keys = append(keys, k)
	}
	return keys
}

func (k Key) String() string {
	switch {
	case k == KeyPeriod:
		return "period"
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	case k == KeyLeftShift:
		return "lshift"
	case k == KeyLeftCtrl:
		return "lctrl"
	default:
		return fmt.Sprintf("key(%d)", uint16(k))
	}
}

// IsDigit reports whether k is one of Key0..Key9.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsLetter reports whether k is one of KeyA..KeyZ.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsFunction reports whether k is one of KeyF1..KeyF12.
func (k Key) IsFunction() bool {
	return k >= KeyF1 && k <= KeyF12
}

// DigitKey maps 0-9 to its number-row key.
func DigitKey(n int) (Key, bool) {
	if n < 0 || n > 9 {
		return KeyNone, false
	}
	return Key0 + Key(n), true
}

// LetterKey maps 'a'..'z' (either case) to its key.
func LetterKey(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	default:
		return KeyNone, false
	}
}

// FunctionKey maps 1..12 to F1..F12.
func FunctionKey(n int) (Key, bool) {
	if n < 1 || n > 12 {
		return KeyNone, false
	}
	return KeyF1 + Key(n-1), true
}
