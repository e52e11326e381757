package macro

import (
	"fmt"
	"math"
	"time"

	"moonwalk/internal/config"
)

const (
	// TapHold is the gap between the press and release of a tap.
	TapHold = 10 * time.Millisecond

	AfterPeriod     = 50 * time.Millisecond
	AfterEmote      = 50 * time.Millisecond
	UnequipGap      = 100 * time.Millisecond
	ModifierLead    = 20 * time.Millisecond
	MoveDwell       = 250 * time.Millisecond
	ReleaseGap      = 20 * time.Millisecond
	UnshiftlockGap  = 100 * time.Millisecond
	emoteMenuKey    = KeyPeriod
	clipMovementKey = KeyW
)

// Sequencer plays the fixed macros. Runs are strictly sequential and block
// the caller for their whole duration; there is no cancellation.
type Sequencer struct {
	injector Injector
	clock    Sleeper
	logger   Logger
}

func NewSequencer(injector Injector, clock Sleeper, logger Logger) (*Sequencer, error) {
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if clock == nil {
		return nil, fmt.Errorf("clock is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Sequencer{injector: injector, clock: clock, logger: logger}, nil
}

func (s *Sequencer) Run(action Action, cfg config.Config) error {
	switch action {
	case ActionOffset:
		return s.RunOffset(cfg)
	case ActionClip:
		return s.RunClip(cfg)
	default:
		return fmt.Errorf("unknown action %s", action)
	}
}

// RunOffset opens the emote, waits for the animation peak and switches gear,
// optionally pressing the gear key a second time.
func (s *Sequencer) RunOffset(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	emote, gear, err := slotKeys(cfg)
	if err != nil {
		return err
	}
	run := s.begin(ActionOffset)

	s.logger.Info("Starting COM Offset macro")
	if err := run.emote(emote, cfg.EmoteSlot, cfg.PeakDelay); err != nil {
		return err
	}

	s.logger.Debug("Sending gear slot", "slot", cfg.GearSlot)
	if err := run.send(gear, ModeTap); err != nil {
		return err
	}
	if cfg.UnequipAfter {
		run.wait(UnequipGap)
		s.logger.Debug("Unequipping gear")
		if err := run.send(gear, ModeTap); err != nil {
			return err
		}
	}

	s.logger.Info("COM Offset macro completed")
	return nil
}

// RunClip opens the emote, waits for the animation peak and walks forward
// with the modifier held. Keys still held when an injection fails are left
// down.
func (s *Sequencer) RunClip(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	emote, _, err := slotKeys(cfg)
	if err != nil {
		return err
	}
	modifier := ModifierKey(cfg.ShiftlockKey)
	run := s.begin(ActionClip)

	s.logger.Info("Starting Wall Clip macro")
	if err := run.emote(emote, cfg.EmoteSlot, cfg.PeakDelay); err != nil {
		return err
	}

	s.logger.Debug("Holding modifier and movement", "modifier", modifier, "movement", clipMovementKey)
	if err := run.send(modifier, ModeHold); err != nil {
		return err
	}
	run.wait(ModifierLead)
	if err := run.send(clipMovementKey, ModeHold); err != nil {
		return err
	}
	run.wait(MoveDwell)

	if err := run.send(clipMovementKey, ModeRelease); err != nil {
		return err
	}
	run.wait(ReleaseGap)
	if err := run.send(modifier, ModeRelease); err != nil {
		return err
	}

	if cfg.UnshiftlockAfter {
		run.wait(UnshiftlockGap)
		s.logger.Debug("Toggling shiftlock off", "modifier", modifier)
		if err := run.send(modifier, ModeTap); err != nil {
			return err
		}
	}

	s.logger.Info("Wall Clip macro completed")
	return nil
}

// ModifierKey resolves the configured shiftlock choice to its left-hand key.
func ModifierKey(m config.Modifier) Key {
	if m == config.ModifierControl {
		return KeyLeftCtrl
	}
	return KeyLeftShift
}

// PeakDuration converts the configured seconds to whole milliseconds.
func PeakDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

func slotKeys(cfg config.Config) (emote Key, gear Key, err error) {
	emote, ok := DigitKey(cfg.EmoteSlot)
	if !ok || cfg.EmoteSlot == 0 || cfg.EmoteSlot == 9 {
		return KeyNone, KeyNone, fmt.Errorf("invalid emote slot")
	}
	if len(cfg.GearSlot) != 1 {
		return KeyNone, KeyNone, fmt.Errorf("invalid gear slot")
	}
	gear, ok = DigitKey(int(cfg.GearSlot[0] - '0'))
	if !ok {
		return KeyNone, KeyNone, fmt.Errorf("invalid gear slot")
	}
	return emote, gear, nil
}

type macroRun struct {
	s      *Sequencer
	action Action
}

func (s *Sequencer) begin(action Action) macroRun {
	return macroRun{s: s, action: action}
}

// emote runs the shared prefix of both macros: open the emote menu, pick the
// slot and wait for the animation peak.
func (r macroRun) emote(emote Key, slot int, peak float64) error {
	r.s.logger.Debug("Sending '.' (Period)")
	if err := r.send(emoteMenuKey, ModeTap); err != nil {
		return err
	}
	r.wait(AfterPeriod)

	r.s.logger.Debug("Sending emote slot", "slot", slot)
	if err := r.send(emote, ModeTap); err != nil {
		return err
	}
	r.wait(AfterEmote)

	delay := PeakDuration(peak)
	r.s.logger.Debug("Waiting for peak delay", "ms", delay.Milliseconds())
	r.wait(delay)
	return nil
}

func (r macroRun) send(key Key, mode Mode) error {
	var err error
	switch mode {
	case ModeTap:
		if err = r.s.injector.KeyDown(key); err == nil {
			r.s.clock.Sleep(TapHold)
			err = r.s.injector.KeyUp(key)
		}
	case ModeHold:
		err = r.s.injector.KeyDown(key)
	case ModeRelease:
		err = r.s.injector.KeyUp(key)
	default:
		err = fmt.Errorf("unknown mode %d", int(mode))
	}
	if err != nil {
		r.s.logger.Error("Key injection failed", "action", r.action, "key", key, "mode", mode, "err", err)
		return &InjectionError{Action: r.action, Key: key, Mode: mode, Err: err}
	}
	return nil
}

func (r macroRun) wait(d time.Duration) {
	r.s.clock.Sleep(d)
}
