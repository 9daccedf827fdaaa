// Package ledger holds the in-memory collections of accounts, transactions,
// todos and custom categories, and derives balances and views from them.
//
// A Store is owned by a single session and is not safe for concurrent use.
// Every mutation happens synchronously through the primitives below, which the
// history package wraps into undoable commands.
package ledger

import (
	"log/slog"
	"slices"

	"github.com/Veraticus/lifeledger/internal/model"
)

// HomeView is the aggregate view that shows every transaction.
const HomeView = "home"

// Snapshot is a deep copy of the store's collections, used for persistence and export.
type Snapshot struct {
	Accounts         []model.Account        `json:"accounts"`
	Transactions     []model.Transaction    `json:"transactions"`
	Todos            []model.Todo           `json:"todos"`
	CustomCategories model.CustomCategories `json:"customCategories"`
}

// Store owns the ledger collections.
type Store struct {
	custom       model.CustomCategories
	accounts     []model.Account
	transactions []model.Transaction
	todos        []model.Todo
}

// New builds a store from a persisted snapshot. The default account is
// created when the snapshot does not contain it.
func New(snap Snapshot) *Store {
	s := &Store{}
	s.load(snap)
	return s
}

func (s *Store) load(snap Snapshot) {
	s.accounts = ensureDefaultAccount(slices.Clone(snap.Accounts))
	s.transactions = slices.Clone(snap.Transactions)
	s.todos = cloneTodos(snap.Todos)
	s.custom = snap.CustomCategories.Clone()
}

func ensureDefaultAccount(accounts []model.Account) []model.Account {
	for _, a := range accounts {
		if a.ID == model.DefaultAccountID {
			return accounts
		}
	}
	slog.Debug("default account missing, creating it")
	return append([]model.Account{model.DefaultAccount()}, accounts...)
}

func cloneTodos(todos []model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		out[i] = t.Clone()
	}
	return out
}

// Snapshot returns a deep copy of all collections.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Accounts:         s.Accounts(),
		Transactions:     s.Transactions(),
		Todos:            s.Todos(),
		CustomCategories: s.custom.Clone(),
	}
}

// Replace swaps the transactions and todos wholesale. Accounts are replaced
// only when a non-empty list is given; custom categories are kept.
func (s *Store) Replace(transactions []model.Transaction, todos []model.Todo, accounts []model.Account) {
	snap := Snapshot{
		Accounts:         s.accounts,
		Transactions:     transactions,
		Todos:            todos,
		CustomCategories: s.custom,
	}
	if len(accounts) > 0 {
		snap.Accounts = accounts
	}
	s.load(snap)
}

// Accounts returns a copy of the accounts in display order.
func (s *Store) Accounts() []model.Account {
	return slices.Clone(s.accounts)
}

// Account returns the account with the given id.
func (s *Store) Account(id string) (model.Account, bool) {
	i := s.accountIndex(id)
	if i < 0 {
		return model.Account{}, false
	}
	return s.accounts[i], true
}

// Transactions returns a copy of all transactions in insertion order.
func (s *Store) Transactions() []model.Transaction {
	return slices.Clone(s.transactions)
}

// Transaction returns the transaction with the given id.
func (s *Store) Transaction(id int64) (model.Transaction, bool) {
	i := s.transactionIndex(id)
	if i < 0 {
		return model.Transaction{}, false
	}
	return s.transactions[i], true
}

// Todos returns a copy of the todos in insertion order.
func (s *Store) Todos() []model.Todo {
	return cloneTodos(s.todos)
}

// Todo returns the todo with the given id.
func (s *Store) Todo(id int64) (model.Todo, bool) {
	i := s.todoIndex(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i].Clone(), true
}

// TransactionsForView returns the transactions visible from view. The home
// view sees everything; an account view also sees transfers into the account.
func (s *Store) TransactionsForView(view string) []model.Transaction {
	if view == HomeView {
		return s.Transactions()
	}
	var out []model.Transaction
	for _, t := range s.transactions {
		if t.Touches(view) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) accountIndex(id string) int {
	return slices.IndexFunc(s.accounts, func(a model.Account) bool { return a.ID == id })
}

func (s *Store) transactionIndex(id int64) int {
	return slices.IndexFunc(s.transactions, func(t model.Transaction) bool { return t.ID == id })
}

func (s *Store) todoIndex(id int64) int {
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}
