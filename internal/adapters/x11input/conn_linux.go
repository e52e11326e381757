//go:build linux

package x11input

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"moonwalk/internal/core/macro"
)

func openDisplay() (*xgbutil.XUtil, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	if xu.Conn() == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}
	keybind.Initialize(xu)
	return xu, nil
}

func resolveKeycodes(xu *xgbutil.XUtil, key macro.Key) ([]xproto.Keycode, error) {
	name, ok := KeyString(key)
	if !ok {
		return nil, fmt.Errorf("unsupported X11 key %s", key)
	}

	keycodes := keybind.StrToKeycodes(xu, name)
	if len(keycodes) == 0 {
		return nil, fmt.Errorf("failed to resolve X11 key %q", name)
	}

	uniq := make(map[xproto.Keycode]struct{}, len(keycodes))
	for _, keycode := range keycodes {
		uniq[keycode] = struct{}{}
	}
	result := make([]xproto.Keycode, 0, len(uniq))
	for keycode := range uniq {
		result = append(result, keycode)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}
