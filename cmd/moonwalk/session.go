package main

import (
	"errors"
	"fmt"
	"strings"

	"moonwalk/internal/config"
	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

type status struct {
	Text     string
	Severity macro.Severity
}

type hotkeyTarget int

const (
	targetOffset hotkeyTarget = iota
	targetClip
)

func (t hotkeyTarget) label() string {
	if t == targetClip {
		return "Clip"
	}
	return "COM"
}

// session owns the live config and everything the window drives. All
// methods run on the UI thread.
type session struct {
	cfg       config.Config
	sequencer *macro.Sequencer
	bridge    *hotkeys.Bridge
	listener  hotkeys.Listener
	injector  macro.Injector
	logger    macro.Logger

	capturing  bool
	captureFor hotkeyTarget
}

func newSession(cfg config.Config, injector macro.Injector, listener hotkeys.Listener, clock macro.Sleeper, logger macro.Logger) (*session, error) {
	sequencer, err := macro.NewSequencer(injector, clock, logger)
	if err != nil {
		return nil, err
	}
	bridge, err := hotkeys.NewBridge(listener, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:       cfg,
		sequencer: sequencer,
		bridge:    bridge,
		listener:  listener,
		injector:  injector,
		logger:    logger,
	}, nil
}

func (s *session) runAction(action macro.Action) status {
	err := s.sequencer.Run(action, s.cfg)
	out := macro.Classify(action, err)
	switch out.Kind {
	case macro.KindSuccess:
		s.logger.Info(out.Message)
	case macro.KindRecoverable:
		s.logger.Warn(out.Message)
	default:
		s.logger.Error(out.Message)
	}
	return status{Text: out.Message, Severity: out.Severity}
}

func (s *session) applyHotkeys() status {
	if hotkeys.IsUnavailable(s.listener) {
		return status{Text: hotkeys.UnavailableStatus, Severity: macro.SeverityError}
	}
	if err := s.bridge.Register(s.cfg.OffsetHotkey, s.cfg.ClipHotkey); err != nil {
		s.logger.Error("Failed to register hotkeys", "err", err)
		return status{Text: fmt.Sprintf("Failed to register hotkeys: %v", err), Severity: macro.SeverityError}
	}
	return status{Text: "Hotkeys registered successfully", Severity: macro.SeveritySuccess}
}

func (s *session) activeHotkeys() string {
	return "Active: " + s.bridge.Active()
}

// pollHotkeys runs every action triggered since the last poll, in order,
// and returns the status of the last one.
func (s *session) pollHotkeys() (status, bool) {
	var last status
	ran := false
	for _, action := range s.bridge.Poll() {
		last = s.runAction(action)
		ran = true
	}
	return last, ran
}

func (s *session) beginCapture(target hotkeyTarget) status {
	s.capturing = true
	s.captureFor = target
	return status{
		Text:     fmt.Sprintf("Press any key to set %s hotkey...", target.label()),
		Severity: macro.SeverityInfo,
	}
}

// finishCapture stores the key name as typed. It is only checked against
// the hotkey grammar when hotkeys are applied.
func (s *session) finishCapture(keyName string) (status, bool) {
	if !s.capturing {
		return status{}, false
	}
	s.capturing = false
	name := strings.ToLower(strings.TrimSpace(keyName))
	if s.captureFor == targetClip {
		s.cfg.ClipHotkey = name
	} else {
		s.cfg.OffsetHotkey = name
	}
	return status{
		Text:     fmt.Sprintf("%s hotkey updated", s.captureFor.label()),
		Severity: macro.SeveritySuccess,
	}, true
}

func (s *session) hotkeyName(target hotkeyTarget) string {
	if target == targetClip {
		return s.cfg.ClipHotkey
	}
	return s.cfg.OffsetHotkey
}

func (s *session) close() error {
	return errors.Join(s.bridge.Close(), s.injector.Close())
}
