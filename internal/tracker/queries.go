package tracker

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/interchange"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
)

// Accounts returns the accounts in display order.
func (t *Tracker) Accounts() []model.Account {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Accounts()
}

// Account returns the account with id.
func (t *Tracker) Account(id string) (model.Account, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Account(id)
}

// BalanceOf derives the balance of an account from its transactions.
func (t *Tracker) BalanceOf(accountID string) decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.BalanceOf(accountID)
}

// Balances returns every account with its derived balance.
func (t *Tracker) Balances() []ledger.AccountBalance {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Balances()
}

// TransactionsForView returns the transactions visible from view, either
// ledger.HomeView or an account id.
func (t *Tracker) TransactionsForView(view string) []model.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.TransactionsForView(view)
}

// Summary totals the transactions visible from view.
func (t *Tracker) Summary(view string) ledger.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.Summarize(t.store.TransactionsForView(view), view)
}

// Todos returns the todos in the requested order.
func (t *Tracker) Todos(order ledger.TodoOrder) []model.Todo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.SortTodos(t.store.Todos(), order)
}

// CategoriesFor lists the default then custom categories of a type.
func (t *Tracker) CategoriesFor(typ model.TransactionType) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.CategoriesFor(typ)
}

// CustomCategories returns the user-defined categories.
func (t *Tracker) CustomCategories() model.CustomCategories {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.CustomCategories()
}

// Achievements returns the streak and points state.
func (t *Tracker) Achievements() model.AchievementState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Snapshot()
}

// CanUndo reports whether Undo would do anything.
func (t *Tracker) CanUndo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (t *Tracker) CanRedo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.CanRedo()
}

// UndoDescription labels the command Undo would revert.
func (t *Tracker) UndoDescription() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.UndoDescription()
}

// RedoDescription labels the command Redo would re-apply.
func (t *Tracker) RedoDescription() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.RedoDescription()
}

// HistoryEntry is one line of the undo/redo listing.
type HistoryEntry struct {
	Description string
	Undone      bool
}

// History lists undoable commands newest first, followed by redoable ones
// in the order Redo would apply them.
func (t *Tracker) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.history.State()
	entries := make([]HistoryEntry, 0, len(st.Undo)+len(st.Redo))
	for i := len(st.Undo) - 1; i >= 0; i-- {
		entries = append(entries, HistoryEntry{Description: st.Undo[i].Description()})
	}
	for i := len(st.Redo) - 1; i >= 0; i-- {
		entries = append(entries, HistoryEntry{Description: st.Redo[i].Description(), Undone: true})
	}
	return entries
}

// Export writes a JSON backup.
func (t *Tracker) Export(w io.Writer) error {
	t.mu.Lock()
	snap := t.store.Snapshot()
	now := t.now()
	t.mu.Unlock()

	if err := interchange.ExportJSON(w, snap, now); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

// ExportCSV writes every transaction as CSV.
func (t *Tracker) ExportCSV(w io.Writer) error {
	t.mu.Lock()
	txs := t.store.Transactions()
	accounts := t.store.Accounts()
	t.mu.Unlock()

	if err := interchange.ExportCSV(w, txs, accounts); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}
