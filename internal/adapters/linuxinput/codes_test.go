package linuxinput

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"

	"moonwalk/internal/core/macro"
)

func TestKeyToCode(t *testing.T) {
	tests := []struct {
		key  macro.Key
		code evdev.EvCode
	}{
		{key: macro.KeyPeriod, code: evdev.KEY_DOT},
		{key: macro.Key0, code: evdev.KEY_0},
		{key: macro.Key1, code: evdev.KEY_1},
		{key: macro.KeyW, code: evdev.KEY_W},
		{key: macro.KeyF8, code: evdev.KEY_F8},
		{key: macro.KeyLeftShift, code: evdev.KEY_LEFTSHIFT},
		{key: macro.KeyLeftCtrl, code: evdev.KEY_LEFTCTRL},
	}
	for _, tc := range tests {
		got, ok := KeyToCode(tc.key)
		if !ok || got != tc.code {
			t.Fatalf("KeyToCode(%s)=%s,%v, want %s,true", tc.key, FormatCodeName(got), ok, FormatCodeName(tc.code))
		}
		back, ok := KeyFromCode(got)
		if !ok || back != tc.key {
			t.Fatalf("KeyFromCode(%s)=%s,%v, want %s", FormatCodeName(got), back, ok, tc.key)
		}
	}
}

func TestKeyboardCodesCoverEveryKey(t *testing.T) {
	codes := keyboardCodes()
	if len(codes) != len(macro.AllKeys()) {
		t.Fatalf("keyboard advertises %d codes, want %d", len(codes), len(macro.AllKeys()))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not strictly sorted at %d: %v", i, codes)
		}
	}
}

func TestFormatCodeName(t *testing.T) {
	if name := FormatCodeName(evdev.KEY_F7); name != "KEY_F7" {
		t.Fatalf("FormatCodeName(KEY_F7)=%q", name)
	}
}
