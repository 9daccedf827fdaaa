package ledger

import (
	"slices"

	"github.com/Veraticus/lifeledger/internal/model"
)

// clampIndex keeps a captured index valid for insertion into a slice of length n.
func clampIndex(i, n int) int {
	if i < 0 || i > n {
		return n
	}
	return i
}

// AppendTransaction adds t at the end of the transaction list.
func (s *Store) AppendTransaction(t model.Transaction) {
	s.transactions = append(s.transactions, t)
}

// InsertTransaction puts t back at index, restoring its original position.
func (s *Store) InsertTransaction(index int, t model.Transaction) {
	s.transactions = slices.Insert(s.transactions, clampIndex(index, len(s.transactions)), t)
}

// RemoveTransaction deletes the transaction with id and returns it with the
// index it occupied. ok is false when no such transaction exists.
func (s *Store) RemoveTransaction(id int64) (removed model.Transaction, index int, ok bool) {
	index = s.transactionIndex(id)
	if index < 0 {
		return model.Transaction{}, -1, false
	}
	removed = s.transactions[index]
	s.transactions = slices.Delete(s.transactions, index, index+1)
	return removed, index, true
}

// AppendTodo adds t at the end of the todo list.
func (s *Store) AppendTodo(t model.Todo) {
	s.todos = append(s.todos, t.Clone())
}

// InsertTodo puts t back at index.
func (s *Store) InsertTodo(index int, t model.Todo) {
	s.todos = slices.Insert(s.todos, clampIndex(index, len(s.todos)), t.Clone())
}

// RemoveTodo deletes the todo with id and returns it with its former index.
func (s *Store) RemoveTodo(id int64) (removed model.Todo, index int, ok bool) {
	index = s.todoIndex(id)
	if index < 0 {
		return model.Todo{}, -1, false
	}
	removed = s.todos[index].Clone()
	s.todos = slices.Delete(s.todos, index, index+1)
	return removed, index, true
}

// SetTodoDone sets the done flag and returns the previous value.
func (s *Store) SetTodoDone(id int64, done bool) (previous bool, ok bool) {
	i := s.todoIndex(id)
	if i < 0 {
		return false, false
	}
	previous = s.todos[i].Done
	s.todos[i].Done = done
	return previous, true
}

// AppendAccount adds a at the end of the account list.
func (s *Store) AppendAccount(a model.Account) {
	s.accounts = append(s.accounts, a)
}

// InsertAccount puts a back at index.
func (s *Store) InsertAccount(index int, a model.Account) {
	s.accounts = slices.Insert(s.accounts, clampIndex(index, len(s.accounts)), a)
}

// RemoveAccount deletes the account with id. Transactions referencing the
// account are kept and simply stop matching any account view.
func (s *Store) RemoveAccount(id string) (removed model.Account, index int, ok bool) {
	index = s.accountIndex(id)
	if index < 0 {
		return model.Account{}, -1, false
	}
	removed = s.accounts[index]
	s.accounts = slices.Delete(s.accounts, index, index+1)
	return removed, index, true
}
