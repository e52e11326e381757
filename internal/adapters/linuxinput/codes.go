package linuxinput

import (
	"strconv"

	evdev "github.com/holoplot/go-evdev"

	"moonwalk/internal/core/macro"
)

var digitCodes = [...]evdev.EvCode{
	evdev.KEY_0, evdev.KEY_1, evdev.KEY_2, evdev.KEY_3, evdev.KEY_4,
	evdev.KEY_5, evdev.KEY_6, evdev.KEY_7, evdev.KEY_8, evdev.KEY_9,
}

var letterCodes = [...]evdev.EvCode{
	evdev.KEY_A, evdev.KEY_B, evdev.KEY_C, evdev.KEY_D, evdev.KEY_E, evdev.KEY_F,
	evdev.KEY_G, evdev.KEY_H, evdev.KEY_I, evdev.KEY_J, evdev.KEY_K, evdev.KEY_L,
	evdev.KEY_M, evdev.KEY_N, evdev.KEY_O, evdev.KEY_P, evdev.KEY_Q, evdev.KEY_R,
	evdev.KEY_S, evdev.KEY_T, evdev.KEY_U, evdev.KEY_V, evdev.KEY_W, evdev.KEY_X,
	evdev.KEY_Y, evdev.KEY_Z,
}

var functionCodes = [...]evdev.EvCode{
	evdev.KEY_F1, evdev.KEY_F2, evdev.KEY_F3, evdev.KEY_F4, evdev.KEY_F5, evdev.KEY_F6,
	evdev.KEY_F7, evdev.KEY_F8, evdev.KEY_F9, evdev.KEY_F10, evdev.KEY_F11, evdev.KEY_F12,
}

var codeToKey map[evdev.EvCode]macro.Key

func init() {
	codeToKey = make(map[evdev.EvCode]macro.Key, len(macro.AllKeys()))
	for _, key := range macro.AllKeys() {
		if code, ok := KeyToCode(key); ok {
			codeToKey[code] = key
		}
	}
}

// KeyToCode returns the evdev KEY_* code for key.
func KeyToCode(key macro.Key) (evdev.EvCode, bool) {
	switch {
	case key == macro.KeyPeriod:
		return evdev.KEY_DOT, true
	case key == macro.KeyLeftShift:
		return evdev.KEY_LEFTSHIFT, true
	case key == macro.KeyLeftCtrl:
		return evdev.KEY_LEFTCTRL, true
	case key.IsDigit():
		return digitCodes[key-macro.Key0], true
	case key.IsLetter():
		return letterCodes[key-macro.KeyA], true
	case key.IsFunction():
		return functionCodes[key-macro.KeyF1], true
	default:
		return 0, false
	}
}

func KeyFromCode(code evdev.EvCode) (macro.Key, bool) {
	key, ok := codeToKey[code]
	return key, ok
}

func FormatCodeName(code evdev.EvCode) string {
	name := evdev.CodeName(evdev.EV_KEY, code)
	if name != "" {
		return name
	}
	return strconv.Itoa(int(code))
}

// keyboardCodes lists every code the virtual keyboard advertises.
func keyboardCodes() []evdev.EvCode {
	codes := make([]evdev.EvCode, 0, len(codeToKey))
	for _, key := range macro.AllKeys() {
		code, _ := KeyToCode(key)
		codes = append(codes, code)
	}
	return sortedCodes(codes)
}
