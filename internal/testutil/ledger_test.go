package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

func TestLedgerBuilder(t *testing.T) {
	l := NewLedgerBuilder(t).
		WithAccount("銀行", model.AccountBank).
		OnDate("2024-02-28").
		WithExpense("午餐", "食物", 120).
		OnDate("2024-02-29").
		WithIncome("薪水", "薪資", "銀行", 3000).
		WithTodo("繳電費", model.PriorityHigh).
		Build()

	txs := l.Tracker.TransactionsForView(ledger.HomeView)
	require.Len(t, txs, 2)
	assert.Equal(t, "2024-02-28", txs[0].Date)
	assert.Equal(t, model.DefaultAccountID, txs[0].Account)
	assert.Equal(t, l.Accounts["銀行"].ID, txs[1].Account)

	assert.Len(t, l.Tracker.Todos(ledger.OrderInserted), 1)
	assert.Equal(t, 2, l.Tracker.Achievements().CurrentStreak)

	// The builder's tracker is fully persisted.
	reopened, err := tracker.Open(context.Background(), l.Storage, tracker.WithClock(l.Clock.Now))
	require.NoError(t, err)
	assert.Len(t, reopened.TransactionsForView(ledger.HomeView), 2)
}

func TestClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, Epoch, c.Now())

	c.Advance(time.Hour)
	assert.Equal(t, Epoch.Add(time.Hour), c.Now())

	c.AdvanceDays(2)
	assert.Equal(t, "2024-03-03", model.FormatDate(c.Now()))
}
