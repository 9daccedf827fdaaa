package history

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/lifeledger/internal/ledger"
)

// MaxDepth bounds the undo stack. Older entries are dropped and can no
// longer be undone.
const MaxDepth = 50

// Action names what the manager just did with a command.
type Action string

const (
	ActionExecute Action = "execute"
	ActionUndo    Action = "undo"
	ActionRedo    Action = "redo"
)

// Event is delivered to observers after every execute, undo and redo.
type Event struct {
	Command *Command
	Action  Action
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver registers fn to be called after every state change.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, fn)
	}
}

// Manager owns the undo and redo stacks for one store.
//
// A command sits on the undo stack only while applied and on the redo stack
// only while reverted; the manager's push/pop sequencing is the only way a
// command changes state.
type Manager struct {
	store     *ledger.Store
	undo      []*Command
	redo      []*Command
	observers []func(Event)
}

// NewManager creates a manager mutating store.
func NewManager(store *ledger.Store, opts ...Option) *Manager {
	m := &Manager{store: store}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute applies cmd, records it for undo, and discards the redo branch.
func (m *Manager) Execute(cmd *Command) {
	cmd.Apply(m.store)
	m.pushUndo(cmd)
	m.redo = nil

	slog.Debug("executed command", "kind", cmd.Kind, "undo_depth", len(m.undo))
	m.notify(cmd, ActionExecute)
}

// Undo reverts the most recent command. It reports false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	cmd := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]

	cmd.Revert(m.store)
	m.redo = append(m.redo, cmd)

	slog.Debug("undid command", "kind", cmd.Kind)
	m.notify(cmd, ActionUndo)
	return true
}

// Redo re-applies the most recently undone command. It reports false when
// there is nothing to redo.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	cmd := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]

	cmd.Apply(m.store)
	m.pushUndo(cmd)

	slog.Debug("redid command", "kind", cmd.Kind)
	m.notify(cmd, ActionRedo)
	return true
}

func (m *Manager) pushUndo(cmd *Command) {
	m.undo = append(m.undo, cmd)
	if over := len(m.undo) - MaxDepth; over > 0 {
		m.undo = append(m.undo[:0:0], m.undo[over:]...)
	}
}

func (m *Manager) notify(cmd *Command, action Action) {
	for _, fn := range m.observers {
		fn(Event{Command: cmd, Action: action})
	}
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDescription describes the command Undo would revert, or "".
func (m *Manager) UndoDescription() string {
	if len(m.undo) == 0 {
		return ""
	}
	return m.undo[len(m.undo)-1].Description()
}

// RedoDescription describes the command Redo would re-apply, or "".
func (m *Manager) RedoDescription() string {
	if len(m.redo) == 0 {
		return ""
	}
	return m.redo[len(m.redo)-1].Description()
}

// Len returns the undo stack depth.
func (m *Manager) Len() int { return len(m.undo) }

// RedoLen returns the redo stack depth.
func (m *Manager) RedoLen() int { return len(m.redo) }

// Clear forgets all history.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// State is the serializable form of both stacks, oldest first.
type State struct {
	Undo []*Command `json:"undo"`
	Redo []*Command `json:"redo"`
}

// State returns the current stacks.
func (m *Manager) State() State {
	return State{
		Undo: append([]*Command(nil), m.undo...),
		Redo: append([]*Command(nil), m.redo...),
	}
}

// Restore replaces both stacks with a previously saved state. The state must
// describe the store the manager was created with.
func (m *Manager) Restore(st State) error {
	for _, stack := range [][]*Command{st.Undo, st.Redo} {
		for i, cmd := range stack {
			if cmd == nil {
				return fmt.Errorf("history entry %d is empty", i)
			}
			if err := cmd.Validate(); err != nil {
				return fmt.Errorf("history entry %d: %w", i, err)
			}
		}
	}

	m.undo = nil
	for _, cmd := range st.Undo {
		m.pushUndo(cmd)
	}
	m.redo = append([]*Command(nil), st.Redo...)
	return nil
}
