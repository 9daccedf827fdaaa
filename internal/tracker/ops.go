package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/history"
	"github.com/Veraticus/lifeledger/internal/interchange"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
)

// TransactionInput describes a new income or expense. An empty Date means
// today and an empty Account means the default account.
type TransactionInput struct {
	Name     string
	Type     model.TransactionType
	Category string
	Date     string
	Account  string
	Amount   float64
}

// TransferInput describes money moving between two accounts. An empty Note
// is recorded as the transfer category name.
type TransferInput struct {
	From   string
	To     string
	Note   string
	Date   string
	Amount float64
}

// TodoInput describes a new todo. An empty Priority means medium.
type TodoInput struct {
	DueDate  *string
	Text     string
	Priority model.Priority
}

// execute runs cmd and persists. Callers have validated already.
func (t *Tracker) execute(ctx context.Context, cmd *history.Command) error {
	t.history.Execute(cmd)
	return t.persist(ctx)
}

// AddTransaction records an income or expense.
func (t *Tracker) AddTransaction(ctx context.Context, in TransactionInput) (model.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if in.Type == model.TypeTransfer {
		return model.Transaction{}, common.Validationf("transfers must be recorded with AddTransfer")
	}
	tx := model.Transaction{
		Name:     strings.TrimSpace(in.Name),
		Type:     in.Type,
		Category: in.Category,
		Date:     t.dateOrToday(in.Date),
		Account:  accountOrDefault(in.Account),
		Amount:   in.Amount,
	}
	if err := t.store.ValidateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}

	tx.ID = t.nextID()
	t.history.Execute(history.AddTransaction(tx))
	t.engine.RecordTransaction()

	slog.Debug("Recorded transaction", "id", tx.ID, "type", tx.Type, "account", tx.Account)
	return tx, t.persist(ctx)
}

// AddTransfer records money moving from one account to another.
func (t *Tracker) AddTransfer(ctx context.Context, in TransferInput) (model.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name := strings.TrimSpace(in.Note)
	if name == "" {
		name = model.TransferCategory
	}
	tx := model.Transaction{
		Name:      name,
		Type:      model.TypeTransfer,
		Category:  model.TransferCategory,
		Date:      t.dateOrToday(in.Date),
		Account:   in.From,
		ToAccount: in.To,
		Amount:    in.Amount,
	}
	if err := t.store.ValidateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}

	tx.ID = t.nextID()
	t.history.Execute(history.AddTransaction(tx))
	t.engine.RecordTransaction()

	slog.Debug("Recorded transfer", "id", tx.ID, "from", tx.Account, "to", tx.ToAccount)
	return tx, t.persist(ctx)
}

// DeleteTransaction removes a transaction. It reports false, and records
// nothing, when no transaction has that id.
func (t *Tracker) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.store.Transaction(id); !ok {
		slog.Debug("delete of unknown transaction ignored", "id", id)
		return false, nil
	}
	return true, t.execute(ctx, history.DeleteTransaction(id))
}

// AddTodo records a new todo.
func (t *Tracker) AddTodo(ctx context.Context, in TodoInput) (model.Todo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	todo := model.Todo{
		Text:     strings.TrimSpace(in.Text),
		Priority: priority,
		DueDate:  in.DueDate,
	}
	if todo.DueDate != nil && *todo.DueDate == "" {
		todo.DueDate = nil
	}
	if err := ledger.ValidateTodo(todo); err != nil {
		return model.Todo{}, err
	}

	now := t.now()
	todo.ID = t.nextID()
	todo.CreatedAt = now.UTC().Format(createdAtLayout)
	todo = todo.Clone()
	return todo, t.execute(ctx, history.AddTodo(todo))
}

const createdAtLayout = "2006-01-02T15:04:05.000Z"

// ToggleTodo flips a todo's done flag. It reports false when no todo has that id.
func (t *Tracker) ToggleTodo(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.store.Todo(id); !ok {
		slog.Debug("toggle of unknown todo ignored", "id", id)
		return false, nil
	}
	return true, t.execute(ctx, history.ToggleTodo(id))
}

// DeleteTodo removes a todo. It reports false when no todo has that id.
func (t *Tracker) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.store.Todo(id); !ok {
		slog.Debug("delete of unknown todo ignored", "id", id)
		return false, nil
	}
	return true, t.execute(ctx, history.DeleteTodo(id))
}

// AddAccount creates an account with a fresh "acc_" id.
func (t *Tracker) AddAccount(ctx context.Context, name string, typ model.AccountType) (model.Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if typ == "" {
		typ = model.AccountCash
	}
	account := model.Account{
		ID:   t.newAccountID(),
		Name: strings.TrimSpace(name),
		Type: typ,
	}
	if err := ledger.ValidateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, t.execute(ctx, history.AddAccount(account))
}

func (t *Tracker) newAccountID() string {
	ms := t.now().UnixMilli()
	for {
		id := "acc_" + strconv.FormatInt(ms, 10)
		if _, taken := t.store.Account(id); !taken {
			return id
		}
		ms++
	}
}

// DeleteAccount removes an account. Its transactions are kept. The default
// account cannot be deleted. It reports false when no account has that id.
func (t *Tracker) DeleteAccount(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id == model.DefaultAccountID {
		return false, common.Validationf("the default account cannot be deleted")
	}
	if _, ok := t.store.Account(id); !ok {
		slog.Debug("delete of unknown account ignored", "account", id)
		return false, nil
	}
	return true, t.execute(ctx, history.DeleteAccount(id))
}

// AddCategory adds a custom income or expense category.
func (t *Tracker) AddCategory(ctx context.Context, typ model.TransactionType, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	if err := t.store.ValidateNewCategory(typ, name); err != nil {
		return err
	}
	return t.execute(ctx, history.AddCategory(typ, name))
}

// RemoveCategory removes a custom category. Transactions filed under it move
// to the sentinel category; undo moves them back.
func (t *Tracker) RemoveCategory(ctx context.Context, typ model.TransactionType, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.ValidateCategoryRemoval(typ, name); err != nil {
		return err
	}
	return t.execute(ctx, history.RemoveCategory(typ, name))
}

// Undo reverts the most recent command. It reports false when there was
// nothing to undo. Achievement state is not rolled back.
func (t *Tracker) Undo(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.history.Undo() {
		return false, nil
	}
	return true, t.persist(ctx)
}

// Redo re-applies the most recently undone command. It reports false when
// there was nothing to redo.
func (t *Tracker) Redo(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.history.Redo() {
		return false, nil
	}
	return true, t.persist(ctx)
}

// ImportJSON parses a JSON backup and imports it. A parse failure wraps
// common.ErrImportFormat and leaves the ledger untouched.
func (t *Tracker) ImportJSON(ctx context.Context, r io.Reader) error {
	payload, err := interchange.ParseImport(r)
	if err != nil {
		return err
	}
	return t.Import(ctx, payload)
}

// Import replaces transactions and todos with a backup, and accounts too when
// the backup lists any. A malformed backup changes nothing. The command
// history is cleared since its positions refer to the replaced collections.
func (t *Tracker) Import(ctx context.Context, payload interchange.Payload) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.Replace(payload.Transactions, payload.Todos, payload.Accounts)
	t.history.Clear()
	t.lastID = max(t.lastID, t.maxEntityID())

	slog.Info("Imported backup",
		"transactions", len(payload.Transactions),
		"todos", len(payload.Todos),
		"accounts", len(payload.Accounts))
	return t.persist(ctx)
}

// ImportStatement records statement drafts into account, one undoable
// transaction each. Every draft is validated before any is recorded. The
// optional progress callback runs after each recorded draft.
func (t *Tracker) ImportStatement(ctx context.Context, drafts []model.Transaction, account string, progress func()) ([]model.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	account = accountOrDefault(account)
	prepared := make([]model.Transaction, len(drafts))
	for i, d := range drafts {
		d.ID = 0
		d.Account = account
		d.ToAccount = ""
		d.Date = t.dateOrToday(d.Date)
		if err := t.store.ValidateTransaction(d); err != nil {
			return nil, fmt.Errorf("statement line %d: %w", i+1, err)
		}
		prepared[i] = d
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range prepared {
		prepared[i].ID = t.nextID()
		t.history.Execute(history.AddTransaction(prepared[i]))
		t.engine.RecordTransaction()
		if progress != nil {
			progress()
		}
	}

	slog.Info("Imported statement", "account", account, "transactions", len(prepared))
	if len(prepared) == 0 {
		return prepared, nil
	}
	return prepared, t.persist(ctx)
}

func (t *Tracker) dateOrToday(date string) string {
	if strings.TrimSpace(date) == "" {
		return t.today()
	}
	return date
}

func accountOrDefault(id string) string {
	if id == "" {
		return model.DefaultAccountID
	}
	return id
}
