// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
)

// LedgerReader exposes the read side of a ledger session.
type LedgerReader interface {
	Accounts() []model.Account
	Balances() []ledger.AccountBalance
	BalanceOf(accountID string) decimal.Decimal
	TransactionsForView(view string) []model.Transaction
	Summary(view string) ledger.Summary
	Todos(order ledger.TodoOrder) []model.Todo
	Achievements() model.AchievementState
	Today() string

	CanUndo() bool
	CanRedo() bool
	UndoDescription() string
	RedoDescription() string
}

// LedgerWriter exposes the interactive writes a dashboard needs.
type LedgerWriter interface {
	Undo(ctx context.Context) (bool, error)
	Redo(ctx context.Context) (bool, error)
	ToggleTodo(ctx context.Context, id int64) (bool, error)
	DeleteTodo(ctx context.Context, id int64) (bool, error)
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
}

// Ledger is a full ledger session.
type Ledger interface {
	LedgerReader
	LedgerWriter
}
