package wininput

import (
	"fmt"
	"sort"

	"moonwalk/internal/core/macro"
)

const (
	vkShift     uint16 = 0x10
	vkControl   uint16 = 0x11
	vk0         uint16 = 0x30
	vkA         uint16 = 0x41
	vkF1        uint16 = 0x70
	vkLShift    uint16 = 0xA0
	vkLControl  uint16 = 0xA2
	vkOEMPeriod uint16 = 0xBE
)

// Scan codes for the US layout, used when MapVirtualKeyW returns nothing.
var fallbackScanCodes = map[uint16]uint16{
	vkOEMPeriod: 0x34,
	vkLShift:    0x2A,
	vkLControl:  0x1D,
}

var keyToVK map[macro.Key]uint16
var vkToKey map[uint16]macro.Key

func init() {
	keyToVK = make(map[macro.Key]uint16, len(macro.AllKeys()))
	for _, key := range macro.AllKeys() {
		switch {
		case key == macro.KeyPeriod:
			keyToVK[key] = vkOEMPeriod
		case key.IsDigit():
			keyToVK[key] = vk0 + uint16(key-macro.Key0)
		case key.IsLetter():
			keyToVK[key] = vkA + uint16(key-macro.KeyA)
		case key.IsFunction():
			keyToVK[key] = vkF1 + uint16(key-macro.KeyF1)
		case key == macro.KeyLeftShift:
			keyToVK[key] = vkLShift
		case key == macro.KeyLeftCtrl:
			keyToVK[key] = vkLControl
		}
	}

	vkToKey = make(map[uint16]macro.Key, len(keyToVK)+2)
	for key, vk := range keyToVK {
		vkToKey[vk] = key
	}
	vkToKey[vkShift] = macro.KeyLeftShift
	vkToKey[vkControl] = macro.KeyLeftCtrl
}

// KeyToVK returns the virtual-key code for key.
func KeyToVK(key macro.Key) (uint16, bool) {
	vk, ok := keyToVK[key]
	return vk, ok
}

// KeyFromVK maps a virtual-key code back, folding generic shift/control
// onto their left-hand variants.
func KeyFromVK(vk uint16) (macro.Key, bool) {
	key, ok := vkToKey[vk]
	return key, ok
}

func FormatVK(vk uint16) string {
	if key, ok := KeyFromVK(vk); ok {
		return fmt.Sprintf("VK_0x%02X(%s)", vk, key)
	}
	return fmt.Sprintf("VK_0x%02X", vk)
}

// MappedKeys lists every key with a virtual-key code, in key order.
func MappedKeys() []macro.Key {
	out := make([]macro.Key, 0, len(keyToVK))
	for key := range keyToVK {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
