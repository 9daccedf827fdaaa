// Package history implements undo and redo over ledger mutations.
//
// Every mutation is a Command: a closed set of kinds, each carrying only the
// state it needs to be applied again or reverted. Commands are plain data so a
// history can be persisted and restored between sessions.
package history

import (
	"fmt"

	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
)

// Kind enumerates the supported mutations.
type Kind string

const (
	KindAddTransaction    Kind = "add_transaction"
	KindDeleteTransaction Kind = "delete_transaction"
	KindAddTodo           Kind = "add_todo"
	KindDeleteTodo        Kind = "delete_todo"
	KindToggleTodo        Kind = "toggle_todo"
	KindAddAccount        Kind = "add_account"
	KindDeleteAccount     Kind = "delete_account"
	KindAddCategory       Kind = "add_category"
	KindRemoveCategory    Kind = "remove_category"
)

// TransactionChange is the payload of the transaction kinds. For an add,
// Entity is the transaction to insert. For a delete, Entity and Index are
// captured when the command is applied.
type TransactionChange struct {
	Entity *model.Transaction `json:"entity,omitempty"`
	ID     int64              `json:"id"`
	Index  int                `json:"index"`
}

// TodoChange is the payload of the todo kinds. Previous holds the done flag
// before a toggle.
type TodoChange struct {
	Entity   *model.Todo `json:"entity,omitempty"`
	Previous *bool       `json:"previous,omitempty"`
	ID       int64       `json:"id"`
	Index    int         `json:"index"`
}

// AccountChange is the payload of the account kinds.
type AccountChange struct {
	Entity *model.Account `json:"entity,omitempty"`
	ID     string         `json:"id"`
	Index  int            `json:"index"`
}

// CategoryChange is the payload of the category kinds. Removal is captured
// when a remove is applied.
type CategoryChange struct {
	Removal *ledger.CategoryRemoval `json:"removal,omitempty"`
	Type    model.TransactionType   `json:"type"`
	Name    string                  `json:"name"`
}

// Command is one undoable mutation. Exactly one payload is set, matching Kind.
type Command struct {
	Transaction *TransactionChange `json:"transaction,omitempty"`
	Todo        *TodoChange        `json:"todo,omitempty"`
	Account     *AccountChange     `json:"account,omitempty"`
	Category    *CategoryChange    `json:"category,omitempty"`
	Kind        Kind               `json:"kind"`
}

// AddTransaction records a new transaction.
func AddTransaction(t model.Transaction) *Command {
	return &Command{
		Kind:        KindAddTransaction,
		Transaction: &TransactionChange{ID: t.ID, Entity: &t, Index: -1},
	}
}

// DeleteTransaction removes the transaction with id.
func DeleteTransaction(id int64) *Command {
	return &Command{
		Kind:        KindDeleteTransaction,
		Transaction: &TransactionChange{ID: id, Index: -1},
	}
}

// AddTodo records a new todo.
func AddTodo(t model.Todo) *Command {
	entity := t.Clone()
	return &Command{
		Kind: KindAddTodo,
		Todo: &TodoChange{ID: t.ID, Entity: &entity, Index: -1},
	}
}

// DeleteTodo removes the todo with id.
func DeleteTodo(id int64) *Command {
	return &Command{
		Kind: KindDeleteTodo,
		Todo: &TodoChange{ID: id, Index: -1},
	}
}

// ToggleTodo flips the done flag of the todo with id.
func ToggleTodo(id int64) *Command {
	return &Command{
		Kind: KindToggleTodo,
		Todo: &TodoChange{ID: id, Index: -1},
	}
}

// AddAccount records a new account.
func AddAccount(a model.Account) *Command {
	return &Command{
		Kind:    KindAddAccount,
		Account: &AccountChange{ID: a.ID, Entity: &a, Index: -1},
	}
}

// DeleteAccount removes the account with id. Its transactions stay.
func DeleteAccount(id string) *Command {
	return &Command{
		Kind:    KindDeleteAccount,
		Account: &AccountChange{ID: id, Index: -1},
	}
}

// AddCategory appends a custom category.
func AddCategory(t model.TransactionType, name string) *Command {
	return &Command{
		Kind:     KindAddCategory,
		Category: &CategoryChange{Type: t, Name: name},
	}
}

// RemoveCategory removes a custom category, moving its transactions to the
// sentinel category.
func RemoveCategory(t model.TransactionType, name string) *Command {
	return &Command{
		Kind:     KindRemoveCategory,
		Category: &CategoryChange{Type: t, Name: name},
	}
}

// Validate checks that the payload matching Kind is present.
func (c *Command) Validate() error {
	var ok bool
	switch c.Kind {
	case KindAddTransaction:
		ok = c.Transaction != nil && c.Transaction.Entity != nil
	case KindDeleteTransaction:
		ok = c.Transaction != nil
	case KindAddTodo:
		ok = c.Todo != nil && c.Todo.Entity != nil
	case KindDeleteTodo, KindToggleTodo:
		ok = c.Todo != nil
	case KindAddAccount:
		ok = c.Account != nil && c.Account.Entity != nil
	case KindDeleteAccount:
		ok = c.Account != nil
	case KindAddCategory, KindRemoveCategory:
		ok = c.Category != nil
	default:
		return fmt.Errorf("unknown command kind %q", c.Kind)
	}
	if !ok {
		return fmt.Errorf("command %q is missing its payload", c.Kind)
	}
	return nil
}

// Apply performs the forward mutation. It runs on first execution and on
// every redo, and produces the same result given the same prior state.
// A target that no longer exists makes it a no-op.
func (c *Command) Apply(s *ledger.Store) {
	switch c.Kind {
	case KindAddTransaction:
		s.AppendTransaction(*c.Transaction.Entity)

	case KindDeleteTransaction:
		p := c.Transaction
		removed, index, ok := s.RemoveTransaction(p.ID)
		p.Entity, p.Index = nil, -1
		if ok {
			p.Entity, p.Index = &removed, index
		}

	case KindAddTodo:
		s.AppendTodo(*c.Todo.Entity)

	case KindDeleteTodo:
		p := c.Todo
		removed, index, ok := s.RemoveTodo(p.ID)
		p.Entity, p.Index = nil, -1
		if ok {
			p.Entity, p.Index = &removed, index
		}

	case KindToggleTodo:
		p := c.Todo
		p.Previous = nil
		if todo, ok := s.Todo(p.ID); ok {
			previous, _ := s.SetTodoDone(p.ID, !todo.Done)
			p.Previous = &previous
		}

	case KindAddAccount:
		s.AppendAccount(*c.Account.Entity)

	case KindDeleteAccount:
		p := c.Account
		removed, index, ok := s.RemoveAccount(p.ID)
		p.Entity, p.Index = nil, -1
		if ok {
			p.Entity, p.Index = &removed, index
		}

	case KindAddCategory:
		s.InsertCategory(c.Category.Type, -1, c.Category.Name)

	case KindRemoveCategory:
		p := c.Category
		p.Removal = nil
		if removal, err := s.RemoveCategory(p.Type, p.Name); err == nil {
			p.Removal = &removal
		}

	default:
		panic(fmt.Sprintf("history: unhandled command kind %q", c.Kind))
	}
}

// Revert undoes Apply, restoring deleted entities at their former index.
func (c *Command) Revert(s *ledger.Store) {
	switch c.Kind {
	case KindAddTransaction:
		s.RemoveTransaction(c.Transaction.Entity.ID)

	case KindDeleteTransaction:
		if p := c.Transaction; p.Entity != nil {
			s.InsertTransaction(p.Index, *p.Entity)
		}

	case KindAddTodo:
		s.RemoveTodo(c.Todo.Entity.ID)

	case KindDeleteTodo:
		if p := c.Todo; p.Entity != nil {
			s.InsertTodo(p.Index, *p.Entity)
		}

	case KindToggleTodo:
		if p := c.Todo; p.Previous != nil {
			s.SetTodoDone(p.ID, *p.Previous)
		}

	case KindAddAccount:
		s.RemoveAccount(c.Account.Entity.ID)

	case KindDeleteAccount:
		if p := c.Account; p.Entity != nil {
			s.InsertAccount(p.Index, *p.Entity)
		}

	case KindAddCategory:
		s.DeleteCategory(c.Category.Type, c.Category.Name)

	case KindRemoveCategory:
		if p := c.Category; p.Removal != nil {
			s.RestoreCategory(*p.Removal)
		}

	default:
		panic(fmt.Sprintf("history: unhandled command kind %q", c.Kind))
	}
}

// Description is a short human readable label for undo/redo prompts.
func (c *Command) Description() string {
	switch c.Kind {
	case KindAddTransaction:
		return "add transaction: " + c.Transaction.Entity.Name
	case KindDeleteTransaction:
		return "delete transaction: " + entityName(c.Transaction.Entity, func(t *model.Transaction) string { return t.Name })
	case KindAddTodo:
		return "add todo: " + c.Todo.Entity.Text
	case KindDeleteTodo:
		return "delete todo: " + entityName(c.Todo.Entity, func(t *model.Todo) string { return t.Text })
	case KindToggleTodo:
		return "toggle todo"
	case KindAddAccount:
		return "add account: " + c.Account.Entity.Name
	case KindDeleteAccount:
		return "delete account: " + entityName(c.Account.Entity, func(a *model.Account) string { return a.Name })
	case KindAddCategory:
		return fmt.Sprintf("add %s category: %s", c.Category.Type, c.Category.Name)
	case KindRemoveCategory:
		return fmt.Sprintf("remove %s category: %s", c.Category.Type, c.Category.Name)
	}
	return "unknown command"
}

func entityName[T any](entity *T, name func(*T) string) string {
	if entity == nil {
		return ""
	}
	return name(entity)
}
