// Package config holds the user-tunable macro parameters and their validators.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FieldEmoteSlot = "emote_slot"
	FieldGearSlot  = "gear_slot"
	FieldPeakDelay = "peak_delay"

	MinEmoteSlot = 1
	MaxEmoteSlot = 8
	MinPeakDelay = 0.05
	MaxPeakDelay = 5.0

	GearSlotKeys = "1234567890"
)

// Modifier selects the key held during the wall clip.
type Modifier int

const (
	ModifierShift Modifier = iota
	ModifierControl
)

func (m Modifier) String() string {
	switch m {
	case ModifierShift:
		return "shift"
	case ModifierControl:
		return "control"
	default:
		return fmt.Sprintf("modifier(%d)", int(m))
	}
}

// Label is the capitalised name shown in the UI.
func (m Modifier) Label() string {
	switch m {
	case ModifierControl:
		return "Control"
	default:
		return "Shift"
	}
}

func ParseModifier(value string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "shift":
		return ModifierShift, nil
	case "control", "ctrl":
		return ModifierControl, nil
	default:
		return ModifierShift, fmt.Errorf("invalid modifier %q (expected shift|control)", value)
	}
}

func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Modifier) UnmarshalText(text []byte) error {
	parsed, err := ParseModifier(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type Config struct {
	EmoteSlot        int      `toml:"emote_slot"`
	GearSlot         string   `toml:"gear_slot"`
	PeakDelay        float64  `toml:"peak_delay"`
	UnequipAfter     bool     `toml:"unequip_after"`
	UnshiftlockAfter bool     `toml:"unshiftlock_after"`
	ShiftlockKey     Modifier `toml:"shiftlock_key"`
	OffsetHotkey     string   `toml:"com_hotkey"`
	ClipHotkey       string   `toml:"clip_hotkey"`
}

func Defaults() Config {
	return Config{
		EmoteSlot:        1,
		GearSlot:         "1",
		PeakDelay:        0.97,
		UnequipAfter:     true,
		UnshiftlockAfter: false,
		ShiftlockKey:     ModifierShift,
		OffsetHotkey:     "f7",
		ClipHotkey:       "f8",
	}
}

// ValidationError reports the first field that failed a range or format check.
// Error returns the user-facing message unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var gearSlotTag = "oneof=" + strings.Join(strings.Split(GearSlotKeys, ""), " ")

func (c Config) ValidateEmoteSlot() error {
	if err := validate.Var(c.EmoteSlot, fmt.Sprintf("min=%d,max=%d", MinEmoteSlot, MaxEmoteSlot)); err != nil {
		return &ValidationError{Field: FieldEmoteSlot, Message: "Emote slot must be between 1-8"}
	}
	return nil
}

func (c Config) ValidateGearSlot() error {
	if len(c.GearSlot) != 1 {
		return &ValidationError{Field: FieldGearSlot, Message: "Gear slot must be a single character"}
	}
	if err := validate.Var(c.GearSlot, gearSlotTag); err != nil {
		return &ValidationError{Field: FieldGearSlot, Message: "Gear slot must be 1-9 or 0"}
	}
	return nil
}

func (c Config) ValidatePeakDelay() error {
	if err := validate.Var(c.PeakDelay, "gte=0.05,lte=5"); err != nil {
		return &ValidationError{Field: FieldPeakDelay, Message: "Peak delay must be between 0.05-5.0 seconds"}
	}
	return nil
}

// Validate runs every field check in a fixed order and stops at the first failure.
func (c Config) Validate() error {
	checks := []func() error{
		c.ValidateEmoteSlot,
		c.ValidateGearSlot,
		c.ValidatePeakDelay,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
