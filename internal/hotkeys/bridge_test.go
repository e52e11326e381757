package hotkeys

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"pgregory.net/rapid"

	"moonwalk/internal/core/macro"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeListener struct {
	mu          sync.Mutex
	next        ID
	registered  map[ID]macro.Key
	failOn      macro.Key
	clears      int
	closed      bool
	presses     chan ID
	registerLog []macro.Key
}

func newFakeListener() *fakeListener {
	return &fakeListener{registered: make(map[ID]macro.Key), presses: NewQueue()}
}

func (f *fakeListener) Register(key macro.Key) (ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerLog = append(f.registerLog, key)
	if f.failOn != macro.KeyNone && key == f.failOn {
		return 0, errors.New("hotkey already registered")
	}
	f.next++
	f.registered[f.next] = key
	return f.next, nil
}

func (f *fakeListener) UnregisterAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.registered = make(map[ID]macro.Key)
	return nil
}

func (f *fakeListener) Presses() <-chan ID { return f.presses }

func (f *fakeListener) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// press simulates the OS reporting key down.
func (f *fakeListener) press(key macro.Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, k := range f.registered {
		if k == key {
			Deliver(f.presses, id)
		}
	}
}

func (f *fakeListener) active() map[ID]macro.Key {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[ID]macro.Key, len(f.registered))
	for id, k := range f.registered {
		out[id] = k
	}
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func newTestBridge(t *testing.T) (*Bridge, *fakeListener) {
	t.Helper()
	listener := newFakeListener()
	bridge, err := NewBridge(listener, noopLogger{})
	require.NoError(t, err)
	return bridge, listener
}

func TestParseName(t *testing.T) {
	tests := map[string]macro.Key{
		"f1":   macro.KeyF1,
		"F12":  macro.KeyF12,
		" f7 ": macro.KeyF7,
		"a":    macro.KeyA,
		"Z":    macro.KeyZ,
		"f":    macro.KeyF,
		"0":    macro.Key0,
		"9":    macro.Key9,
	}
	for name, want := range tests {
		got, err := ParseName(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, got, "name %q", name)
	}

	for _, name := range []string{"f13", "f0", "f01", "", "ab", "shift", ".", "f-1", "İ", "\u212a"} {
		_, err := ParseName(name)
		require.Error(t, err, "name %q", name)
		assert.ErrorIs(t, err, ErrUnsupportedKey)
	}

	_, err := ParseName("F13")
	assert.EqualError(t, err, "Unsupported key: f13")

	_, err = ParseName("İ")
	assert.EqualError(t, err, "Unsupported key: İ")
}

func TestParseNameRoundTripsKeyNames(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SampledFrom(macro.AllKeys()).Draw(t, "key")
		got, err := ParseName(key.String())
		bindable := key.IsDigit() || key.IsLetter() || key.IsFunction()
		if bindable {
			if err != nil || got != key {
				t.Fatalf("%s: got %v, %v", key, got, err)
			}
			return
		}
		if !errors.Is(err, ErrUnsupportedKey) {
			t.Fatalf("%s should be rejected, got %v", key, err)
		}
	})
}

func TestRegisterBindsBothActions(t *testing.T) {
	bridge, listener := newTestBridge(t)

	require.NoError(t, bridge.Register("f7", "F8"))
	assert.Equal(t, "COM: f7, Clip: f8", bridge.Active())
	assert.Equal(t, []macro.Key{macro.KeyF7, macro.KeyF8}, listener.registerLog)

	listener.press(macro.KeyF8)
	listener.press(macro.KeyF7)
	assert.Equal(t, []macro.Action{macro.ActionClip, macro.ActionOffset}, bridge.Poll())
	assert.Empty(t, bridge.Poll())
}

func TestRegisterReplacesPriorBindingsWholesale(t *testing.T) {
	bridge, listener := newTestBridge(t)

	require.NoError(t, bridge.Register("f7", "f8"))
	require.NoError(t, bridge.Register("g", "h"))

	assert.Equal(t, 2, listener.clears)
	assert.ElementsMatch(t, []macro.Key{macro.KeyG, macro.KeyH}, values(listener.active()))
	assert.Equal(t, "COM: g, Clip: h", bridge.Active())

	listener.press(macro.KeyF7)
	assert.Empty(t, bridge.Poll())
}

func TestRegisterUnknownNameLeavesNothingBound(t *testing.T) {
	bridge, listener := newTestBridge(t)
	require.NoError(t, bridge.Register("f7", "f8"))

	err := bridge.Register("f7", "f13")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedKey)
	assert.Equal(t, "Unsupported key: f13", err.Error())

	assert.Empty(t, listener.active())
	assert.Equal(t, "None", bridge.Active())
	assert.Equal(t, []macro.Key{macro.KeyF7, macro.KeyF8}, listener.registerLog)
}

func TestRegisterKeepsOffsetWhenClipFails(t *testing.T) {
	bridge, listener := newTestBridge(t)
	listener.failOn = macro.KeyF8

	err := bridge.Register("f7", "f8")
	require.Error(t, err)
	assert.EqualError(t, err, "register Clip hotkey: hotkey already registered")
	assert.Equal(t, "COM: f7", bridge.Active())

	listener.press(macro.KeyF7)
	assert.Equal(t, []macro.Action{macro.ActionOffset}, bridge.Poll())
}

func TestRegisterOffsetFailureStopsBeforeClip(t *testing.T) {
	bridge, listener := newTestBridge(t)
	listener.failOn = macro.KeyF7

	err := bridge.Register("f7", "f8")
	require.Error(t, err)
	assert.EqualError(t, err, "register COM hotkey: hotkey already registered")
	assert.Equal(t, []macro.Key{macro.KeyF7}, listener.registerLog)
	assert.Equal(t, "None", bridge.Active())
}

func TestPollDropsUnknownIDs(t *testing.T) {
	bridge, listener := newTestBridge(t)
	require.NoError(t, bridge.Register("1", "2"))

	listener.presses <- 99
	listener.press(macro.Key2)
	assert.Equal(t, []macro.Action{macro.ActionClip}, bridge.Poll())
}

func TestPollWithoutRegistrationIsEmpty(t *testing.T) {
	bridge, _ := newTestBridge(t)
	assert.Empty(t, bridge.Poll())
	assert.Equal(t, "None", bridge.Active())
}

func TestUnavailableListenerFailsEveryRegistration(t *testing.T) {
	cause := errors.New("no display")
	listener := Unavailable(cause)
	require.True(t, IsUnavailable(listener))

	bridge, err := NewBridge(listener, noopLogger{})
	require.NoError(t, err)

	err = bridge.Register("f7", "f8")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "None", bridge.Active())
	assert.Empty(t, bridge.Poll())
	assert.NoError(t, bridge.Close())
}

func TestCloseReleasesListener(t *testing.T) {
	bridge, listener := newTestBridge(t)
	require.NoError(t, bridge.Register("f7", "f8"))
	require.NoError(t, bridge.Close())
	assert.True(t, listener.closed)
	assert.Empty(t, listener.active())
	assert.Equal(t, "None", bridge.Active())
}

func TestDeliverDropsWhenFull(t *testing.T) {
	queue := NewQueue()
	for i := 0; i < QueueSize; i++ {
		require.True(t, Deliver(queue, ID(i)))
	}
	assert.False(t, Deliver(queue, 1000))
}

func values(m map[ID]macro.Key) []macro.Key {
	out := make([]macro.Key, 0, len(m))
	for _, k := range m {
		out = append(out, k)
	}
	return out
}
