package macro

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"moonwalk/internal/config"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		err      error
		kind     Kind
		severity Severity
		message  string
	}{
		{
			name:     "success",
			action:   ActionOffset,
			kind:     KindSuccess,
			severity: SeveritySuccess,
			message:  "COM Offset executed successfully",
		},
		{
			name:     "validation",
			action:   ActionClip,
			err:      &config.ValidationError{Field: config.FieldGearSlot, Message: "Gear slot must be 1-9 or 0"},
			kind:     KindRecoverable,
			severity: SeverityWarning,
			message:  "Wall Clip failed: Gear slot must be 1-9 or 0",
		},
		{
			name:     "wrapped validation",
			action:   ActionOffset,
			err:      fmt.Errorf("run: %w", &config.ValidationError{Field: config.FieldEmoteSlot, Message: "Emote slot must be between 1-8"}),
			kind:     KindRecoverable,
			severity: SeverityWarning,
			message:  "COM Offset failed: run: Emote slot must be between 1-8",
		},
		{
			name:     "injection",
			action:   ActionClip,
			err:      &InjectionError{Action: ActionClip, Key: KeyW, Mode: ModeHold, Err: errors.New("access denied")},
			kind:     KindFatal,
			severity: SeverityError,
			message:  "Wall Clip failed: failed to hold key w: access denied",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Classify(tc.action, tc.err)
			assert.Equal(t, tc.kind, out.Kind)
			assert.Equal(t, tc.severity, out.Severity)
			assert.Equal(t, tc.message, out.Message)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("offset")
	assert.NoError(t, err)
	assert.Equal(t, ActionOffset, a)

	a, err = ParseAction("clip")
	assert.NoError(t, err)
	assert.Equal(t, ActionClip, a)

	_, err = ParseAction("jump")
	assert.Error(t, err)
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "period", KeyPeriod.String())
	assert.Equal(t, "0", Key0.String())
	assert.Equal(t, "z", KeyZ.String())
	assert.Equal(t, "f12", KeyF12.String())
	assert.Len(t, AllKeys(), 51)

	k, ok := FunctionKey(7)
	assert.True(t, ok)
	assert.Equal(t, KeyF7, k)
	_, ok = FunctionKey(13)
	assert.False(t, ok)

	k, ok = LetterKey('G')
	assert.True(t, ok)
	assert.Equal(t, KeyG, k)
}
