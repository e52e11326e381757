package main

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moonwalk/internal/config"
	"moonwalk/internal/core/macro"
	"moonwalk/internal/hotkeys"
)

type recordingInjector struct {
	mu     sync.Mutex
	keys   []string
	err    error
	closed bool
}

func (r *recordingInjector) KeyDown(key macro.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, "down "+key.String())
	return nil
}

func (r *recordingInjector) KeyUp(key macro.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, "up "+key.String())
	return nil
}

func (r *recordingInjector) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

type instantClock struct{}

func (instantClock) Sleep(time.Duration) {}

type pressListener struct {
	next    hotkeys.ID
	keys    map[macro.Key]hotkeys.ID
	presses chan hotkeys.ID
	closed  bool
}

func newPressListener() *pressListener {
	return &pressListener{keys: make(map[macro.Key]hotkeys.ID), presses: hotkeys.NewQueue()}
}

func (p *pressListener) Register(key macro.Key) (hotkeys.ID, error) {
	p.next++
	p.keys[key] = p.next
	return p.next, nil
}

func (p *pressListener) UnregisterAll() error {
	p.keys = make(map[macro.Key]hotkeys.ID)
	return nil
}

func (p *pressListener) Presses() <-chan hotkeys.ID { return p.presses }

func (p *pressListener) Close() error {
	p.closed = true
	return nil
}

func (p *pressListener) press(key macro.Key) {
	if id, ok := p.keys[key]; ok {
		hotkeys.Deliver(p.presses, id)
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func newTestSession(t *testing.T, injector macro.Injector, listener hotkeys.Listener) *session {
	t.Helper()
	sess, err := newSession(config.Defaults(), injector, listener, instantClock{}, noopLogger{})
	require.NoError(t, err)
	return sess
}

func TestSessionRunActionStatuses(t *testing.T) {
	inj := &recordingInjector{}
	sess := newTestSession(t, inj, newPressListener())

	st := sess.runAction(macro.ActionOffset)
	assert.Equal(t, status{Text: "COM Offset executed successfully", Severity: macro.SeveritySuccess}, st)
	assert.NotEmpty(t, inj.keys)

	sess.cfg.GearSlot = "x"
	st = sess.runAction(macro.ActionOffset)
	assert.Equal(t, "COM Offset failed: Gear slot must be 1-9 or 0", st.Text)
	assert.Equal(t, macro.SeverityWarning, st.Severity)

	sess.cfg = config.Defaults()
	inj.err = errors.New("access denied")
	st = sess.runAction(macro.ActionClip)
	assert.Equal(t, "Wall Clip failed: failed to tap key period: access denied", st.Text)
	assert.Equal(t, macro.SeverityError, st.Severity)
}

func TestSessionApplyAndPollHotkeys(t *testing.T) {
	listener := newPressListener()
	sess := newTestSession(t, &recordingInjector{}, listener)
	assert.Equal(t, "Active: None", sess.activeHotkeys())

	st := sess.applyHotkeys()
	assert.Equal(t, status{Text: "Hotkeys registered successfully", Severity: macro.SeveritySuccess}, st)
	assert.Equal(t, "Active: COM: f7, Clip: f8", sess.activeHotkeys())

	_, ran := sess.pollHotkeys()
	assert.False(t, ran)

	listener.press(macro.KeyF8)
	st, ran = sess.pollHotkeys()
	require.True(t, ran)
	assert.Equal(t, "Wall Clip executed successfully", st.Text)
}

func TestSessionApplyHotkeysReportsBadName(t *testing.T) {
	sess := newTestSession(t, &recordingInjector{}, newPressListener())
	sess.cfg.ClipHotkey = "f13"

	st := sess.applyHotkeys()
	assert.Equal(t, "Failed to register hotkeys: Unsupported key: f13", st.Text)
	assert.Equal(t, macro.SeverityError, st.Severity)
	assert.Equal(t, "Active: None", sess.activeHotkeys())
}

func TestSessionWithoutHotkeyManager(t *testing.T) {
	sess := newTestSession(t, &recordingInjector{}, hotkeys.Unavailable(errors.New("no display")))

	st := sess.applyHotkeys()
	assert.Equal(t, status{Text: "Hotkey manager not available", Severity: macro.SeverityError}, st)

	st = sess.runAction(macro.ActionOffset)
	assert.Equal(t, macro.SeveritySuccess, st.Severity)
}

func TestSessionCapture(t *testing.T) {
	sess := newTestSession(t, &recordingInjector{}, newPressListener())

	_, ok := sess.finishCapture("G")
	assert.False(t, ok)

	st := sess.beginCapture(targetClip)
	assert.Equal(t, status{Text: "Press any key to set Clip hotkey...", Severity: macro.SeverityInfo}, st)

	st, ok = sess.finishCapture("G")
	require.True(t, ok)
	assert.Equal(t, "Clip hotkey updated", st.Text)
	assert.Equal(t, "g", sess.cfg.ClipHotkey)
	assert.Equal(t, "f7", sess.cfg.OffsetHotkey)

	sess.beginCapture(targetOffset)
	sess.finishCapture("F2")
	assert.Equal(t, "f2", sess.hotkeyName(targetOffset))
}

func TestSessionCloseReleasesBackends(t *testing.T) {
	inj := &recordingInjector{}
	listener := newPressListener()
	sess := newTestSession(t, inj, listener)

	require.NoError(t, sess.close())
	assert.True(t, inj.closed)
	assert.True(t, listener.closed)
}
