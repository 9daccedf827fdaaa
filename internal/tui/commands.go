package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const writeTimeout = 10 * time.Second

// write runs op against the ledger off the UI goroutine.
func (m Model) write(op func(ctx context.Context) (bool, error), done, noop string) tea.Cmd {
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, writeTimeout)
		defer cancel()

		changed, err := op(ctx)
		if err != nil {
			return errorMsg{err: err}
		}
		if !changed {
			return noChangeMsg{status: noop}
		}
		return ledgerChangedMsg{status: done}
	}
}

func (m Model) undo() tea.Cmd {
	desc := m.svc.UndoDescription()
	return m.write(m.svc.Undo, "Undid "+desc, "Nothing to undo")
}

func (m Model) redo() tea.Cmd {
	desc := m.svc.RedoDescription()
	return m.write(m.svc.Redo, "Redid "+desc, "Nothing to redo")
}

func (m Model) toggleTodo(id int64) tea.Cmd {
	return m.write(func(ctx context.Context) (bool, error) {
		return m.svc.ToggleTodo(ctx, id)
	}, "Todo updated", "Todo not found")
}

func (m Model) deleteTodo(id int64) tea.Cmd {
	return m.write(func(ctx context.Context) (bool, error) {
		return m.svc.DeleteTodo(ctx, id)
	}, "Todo deleted", "Todo not found")
}

func (m Model) deleteTransaction(id int64) tea.Cmd {
	return m.write(func(ctx context.Context) (bool, error) {
		return m.svc.DeleteTransaction(ctx, id)
	}, "Transaction deleted", "Transaction not found")
}
