// Package testutil provides test infrastructure for ledger sessions. It
// offers a controllable clock and a fluent builder for seeding a tracker
// backed by in-memory storage.
//
// Example usage:
//
//	l := testutil.NewLedgerBuilder(t).
//		WithAccount("銀行", model.AccountBank).
//		WithExpense("午餐", "食物", 120).
//		WithTodo("繳電費", model.PriorityHigh).
//		Build()
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/storage"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

// Epoch is where every test clock starts.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

// Clock is a manually advanced time source.
type Clock struct {
	now time.Time
}

// NewClock returns a clock stopped at Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// AdvanceDays moves the clock forward by n calendar days.
func (c *Clock) AdvanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

// Ledger is a seeded tracker together with its backing pieces.
type Ledger struct {
	Tracker  *tracker.Tracker
	Storage  *storage.MemoryStorage
	Clock    *Clock
	Accounts map[string]model.Account
}

// LedgerBuilder seeds a tracker. Every step fails the test on error.
type LedgerBuilder struct {
	t      *testing.T
	ctx    context.Context
	ledger *Ledger
}

// NewLedgerBuilder opens an empty tracker on in-memory storage with a fake clock.
func NewLedgerBuilder(t *testing.T, opts ...tracker.Option) *LedgerBuilder {
	t.Helper()

	clock := NewClock()
	kv := storage.NewMemoryStorage()
	tr, err := tracker.Open(context.Background(), kv, append([]tracker.Option{tracker.WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)

	return &LedgerBuilder{
		t:   t,
		ctx: context.Background(),
		ledger: &Ledger{
			Tracker:  tr,
			Storage:  kv,
			Clock:    clock,
			Accounts: map[string]model.Account{},
		},
	}
}

// WithAccount adds an account, later available in Ledger.Accounts by name.
func (b *LedgerBuilder) WithAccount(name string, typ model.AccountType) *LedgerBuilder {
	b.t.Helper()
	a, err := b.ledger.Tracker.AddAccount(b.ctx, name, typ)
	require.NoError(b.t, err)
	b.ledger.Accounts[name] = a
	return b
}

// WithTransaction records in as given.
func (b *LedgerBuilder) WithTransaction(in tracker.TransactionInput) *LedgerBuilder {
	b.t.Helper()
	_, err := b.ledger.Tracker.AddTransaction(b.ctx, in)
	require.NoError(b.t, err)
	return b
}

// WithExpense records an expense on the default account today.
func (b *LedgerBuilder) WithExpense(name, category string, amount float64) *LedgerBuilder {
	b.t.Helper()
	return b.WithTransaction(tracker.TransactionInput{
		Name: name, Type: model.TypeExpense, Category: category, Amount: amount,
	})
}

// WithIncome records an income into the named account, which must have been
// added with WithAccount.
func (b *LedgerBuilder) WithIncome(name, category, account string, amount float64) *LedgerBuilder {
	b.t.Helper()
	a, ok := b.ledger.Accounts[account]
	require.True(b.t, ok, "unknown test account %q", account)
	return b.WithTransaction(tracker.TransactionInput{
		Name: name, Type: model.TypeIncome, Category: category, Account: a.ID, Amount: amount,
	})
}

// WithTodo adds a todo without a due date.
func (b *LedgerBuilder) WithTodo(text string, priority model.Priority) *LedgerBuilder {
	b.t.Helper()
	_, err := b.ledger.Tracker.AddTodo(b.ctx, tracker.TodoInput{Text: text, Priority: priority})
	require.NoError(b.t, err)
	return b
}

// OnDate moves the clock to the given YYYY-MM-DD at noon, so following
// steps record on that day.
func (b *LedgerBuilder) OnDate(date string) *LedgerBuilder {
	b.t.Helper()
	d, err := model.ParseDate(date)
	require.NoError(b.t, err)
	b.ledger.Clock.now = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local)
	return b
}

// Build returns the seeded ledger.
func (b *LedgerBuilder) Build() *Ledger {
	return b.ledger
}
