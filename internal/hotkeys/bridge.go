package hotkeys

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"moonwalk/internal/core/macro"
)

// ID is the listener's handle for one registered key.
type ID uint32

// QueueSize bounds the press channel of every listener.
const QueueSize = 16

// Listener is the OS side of global hotkeys. A listener belongs to exactly
// one Bridge.
type Listener interface {
	Register(key macro.Key) (ID, error)
	UnregisterAll() error
	// Presses delivers the ID of each registered key when it goes down.
	Presses() <-chan ID
	Close() error
}

type binding struct {
	action macro.Action
	name   string
}

// Bridge maps global key presses onto the two macro actions.
type Bridge struct {
	listener Listener
	logger   macro.Logger

	mu       sync.Mutex
	bindings map[ID]binding
	offset   string
	clip     string
}

func NewBridge(listener Listener, logger macro.Logger) (*Bridge, error) {
	if listener == nil {
		return nil, fmt.Errorf("listener is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Bridge{
		listener: listener,
		logger:   logger,
		bindings: make(map[ID]binding),
	}, nil
}

// Register replaces all bindings. Prior bindings are dropped before the
// names are parsed, so a bad name leaves nothing registered. When the OS
// refuses the clip key, the offset binding stays active.
func (b *Bridge) Register(offsetName, clipName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bindings = make(map[ID]binding)
	b.offset, b.clip = "", ""
	if err := b.listener.UnregisterAll(); err != nil {
		b.logger.Warn("failed to clear hotkeys", "err", err)
	}

	offsetKey, err := ParseName(offsetName)
	if err != nil {
		return err
	}
	clipKey, err := ParseName(clipName)
	if err != nil {
		return err
	}

	id, err := b.listener.Register(offsetKey)
	if err != nil {
		return fmt.Errorf("register COM hotkey: %w", err)
	}
	b.bindings[id] = binding{action: macro.ActionOffset, name: offsetKey.String()}
	b.offset = offsetKey.String()

	id, err = b.listener.Register(clipKey)
	if err != nil {
		return fmt.Errorf("register Clip hotkey: %w", err)
	}
	b.bindings[id] = binding{action: macro.ActionClip, name: clipKey.String()}
	b.clip = clipKey.String()

	b.logger.Info("hotkeys registered", "com", b.offset, "clip", b.clip)
	return nil
}

// Poll drains pending presses without blocking. Presses for IDs that are
// no longer bound are dropped.
func (b *Bridge) Poll() []macro.Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	var actions []macro.Action
	presses := b.listener.Presses()
	for {
		select {
		case id, ok := <-presses:
			if !ok {
				return actions
			}
			bound, found := b.bindings[id]
			if !found {
				b.logger.Debug("dropping press for unbound hotkey", "id", id)
				continue
			}
			b.logger.Debug("hotkey pressed", "key", bound.name, "action", bound.action)
			actions = append(actions, bound.action)
		default:
			return actions
		}
	}
}

// Active describes the current bindings, or "None".
func (b *Bridge) Active() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var parts []string
	if b.offset != "" {
		parts = append(parts, "COM: "+b.offset)
	}
	if b.clip != "" {
		parts = append(parts, "Clip: "+b.clip)
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bindings = make(map[ID]binding)
	b.offset, b.clip = "", ""
	return errors.Join(b.listener.UnregisterAll(), b.listener.Close())
}
