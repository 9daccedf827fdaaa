package tracker

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/achievement"
	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *storage.MemoryStorage, *fakeClock) {
	t.Helper()
	kv := storage.NewMemoryStorage()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}
	tr, err := Open(context.Background(), kv, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)
	return tr, kv, clock
}

func expenseInput(name string, amount float64) TransactionInput {
	return TransactionInput{Name: name, Type: model.TypeExpense, Category: "食物", Amount: amount}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// recomputed sums a view's transactions independently of ledger.BalanceOf.
func recomputed(txs []model.Transaction, accountID string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		a := decimal.NewFromFloat(tx.Amount)
		switch {
		case tx.Type == model.TypeIncome && tx.Account == accountID:
			total = total.Add(a)
		case tx.Type == model.TypeExpense && tx.Account == accountID:
			total = total.Sub(a)
		case tx.Type == model.TypeTransfer:
			if tx.ToAccount == accountID {
				total = total.Add(a)
			}
			if tx.Account == accountID {
				total = total.Sub(a)
			}
		}
	}
	return total
}

func TestOpen_EmptyStorage(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	accounts := tr.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, model.DefaultAccountID, accounts[0].ID)
	assert.Empty(t, tr.TransactionsForView(ledger.HomeView))
	assert.Empty(t, tr.Todos(ledger.OrderInserted))
	assert.False(t, tr.CanUndo())
	assert.False(t, tr.CanRedo())
	assert.Equal(t, model.AchievementState{}, tr.Achievements())
	assert.Equal(t, "2024-03-01", tr.Today())
}

func TestExpenseUndoRedo(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	tx, err := tr.AddTransaction(ctx, expenseInput("lunch", 100))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", tx.Date)
	assert.Equal(t, model.DefaultAccountID, tx.Account)
	assert.True(t, dec(-100).Equal(tr.BalanceOf(model.DefaultAccountID)))
	assert.Equal(t, "add transaction: lunch", tr.UndoDescription())

	undone, err := tr.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, undone)
	assert.True(t, decimal.Zero.Equal(tr.BalanceOf(model.DefaultAccountID)))
	assert.Empty(t, tr.TransactionsForView(ledger.HomeView))
	assert.True(t, tr.CanRedo())

	redone, err := tr.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, redone)
	assert.True(t, dec(-100).Equal(tr.BalanceOf(model.DefaultAccountID)))
	txs := tr.TransactionsForView(ledger.HomeView)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)

	// Nothing left to redo.
	redone, err = tr.Redo(ctx)
	require.NoError(t, err)
	assert.False(t, redone)
}

func TestTransferBetweenAccounts(t *testing.T) {
	ctx := context.Background()
	tr, _, clock := newTestTracker(t)

	bank, err := tr.AddAccount(ctx, "Bank", model.AccountBank)
	require.NoError(t, err)
	assert.Equal(t, "acc_"+strconv.FormatInt(clock.now.UnixMilli(), 10), bank.ID)

	tx, err := tr.AddTransfer(ctx, TransferInput{From: model.DefaultAccountID, To: bank.ID, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, model.TransferCategory, tx.Name)
	assert.Equal(t, model.TransferCategory, tx.Category)

	assert.True(t, dec(-50).Equal(tr.BalanceOf(model.DefaultAccountID)))
	assert.True(t, dec(50).Equal(tr.BalanceOf(bank.ID)))
	assert.Len(t, tr.TransactionsForView(model.DefaultAccountID), 1)
	assert.Len(t, tr.TransactionsForView(bank.ID), 1)
	assert.Len(t, tr.TransactionsForView(ledger.HomeView), 1)

	home := tr.Summary(ledger.HomeView)
	assert.True(t, decimal.Zero.Equal(home.Balance))
	bankView := tr.Summary(bank.ID)
	assert.True(t, dec(50).Equal(bankView.TransferIn))

	// Transfers count toward the streak.
	assert.Equal(t, 1, tr.Achievements().TotalRecords)
}

func TestRemoveCategoryReassignsAndUndoRestores(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	require.NoError(t, tr.AddCategory(ctx, model.TypeExpense, "旅遊"))
	assert.Contains(t, tr.CategoriesFor(model.TypeExpense), "旅遊")

	trip, err := tr.AddTransaction(ctx, TransactionInput{Name: "flight", Type: model.TypeExpense, Category: "旅遊", Amount: 300})
	require.NoError(t, err)
	food, err := tr.AddTransaction(ctx, expenseInput("dinner", 20))
	require.NoError(t, err)

	require.NoError(t, tr.RemoveCategory(ctx, model.TypeExpense, "旅遊"))
	assert.NotContains(t, tr.CategoriesFor(model.TypeExpense), "旅遊")
	byID := indexByID(tr.TransactionsForView(ledger.HomeView))
	assert.Equal(t, model.SentinelCategory, byID[trip.ID].Category)
	assert.Equal(t, "食物", byID[food.ID].Category)

	_, err = tr.Undo(ctx)
	require.NoError(t, err)
	assert.Contains(t, tr.CategoriesFor(model.TypeExpense), "旅遊")
	byID = indexByID(tr.TransactionsForView(ledger.HomeView))
	assert.Equal(t, "旅遊", byID[trip.ID].Category)
}

func TestValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	tr, kv, _ := newTestTracker(t)

	require.NoError(t, tr.AddCategory(ctx, model.TypeIncome, "股息"))
	before := tr.History()
	transactions := tr.TransactionsForView(ledger.HomeView)
	persisted, err := kv.Get(ctx, KeyHistory)
	require.NoError(t, err)

	tests := []struct {
		run  func() error
		name string
	}{
		{name: "zero amount", run: func() error {
			_, err := tr.AddTransaction(ctx, expenseInput("x", 0))
			return err
		}},
		{name: "negative amount", run: func() error {
			_, err := tr.AddTransaction(ctx, expenseInput("x", -5))
			return err
		}},
		{name: "missing name", run: func() error {
			_, err := tr.AddTransaction(ctx, expenseInput("  ", 5))
			return err
		}},
		{name: "unknown category", run: func() error {
			_, err := tr.AddTransaction(ctx, TransactionInput{Name: "x", Type: model.TypeExpense, Category: "nope", Amount: 5})
			return err
		}},
		{name: "unknown account", run: func() error {
			in := expenseInput("x", 5)
			in.Account = "acc_missing"
			_, err := tr.AddTransaction(ctx, in)
			return err
		}},
		{name: "transfer through AddTransaction", run: func() error {
			_, err := tr.AddTransaction(ctx, TransactionInput{Name: "x", Type: model.TypeTransfer, Amount: 5})
			return err
		}},
		{name: "transfer to same account", run: func() error {
			_, err := tr.AddTransfer(ctx, TransferInput{From: model.DefaultAccountID, To: model.DefaultAccountID, Amount: 5})
			return err
		}},
		{name: "transfer without amount", run: func() error {
			_, err := tr.AddTransfer(ctx, TransferInput{From: model.DefaultAccountID, To: "acc_x", Amount: 0})
			return err
		}},
		{name: "duplicate custom category", run: func() error {
			return tr.AddCategory(ctx, model.TypeIncome, "股息")
		}},
		{name: "duplicate default category", run: func() error {
			return tr.AddCategory(ctx, model.TypeExpense, "食物")
		}},
		{name: "remove default category", run: func() error {
			return tr.RemoveCategory(ctx, model.TypeExpense, model.SentinelCategory)
		}},
		{name: "todo without text", run: func() error {
			_, err := tr.AddTodo(ctx, TodoInput{Text: ""})
			return err
		}},
		{name: "todo with bad priority", run: func() error {
			_, err := tr.AddTodo(ctx, TodoInput{Text: "x", Priority: "urgent"})
			return err
		}},
		{name: "account without name", run: func() error {
			_, err := tr.AddAccount(ctx, " ", model.AccountBank)
			return err
		}},
		{name: "delete default account", run: func() error {
			_, err := tr.DeleteAccount(ctx, model.DefaultAccountID)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, before, tr.History())
			assert.Equal(t, transactions, tr.TransactionsForView(ledger.HomeView))
			stored, err := kv.Get(ctx, KeyHistory)
			require.NoError(t, err)
			assert.Equal(t, persisted, stored)
		})
	}

	assert.Equal(t, model.AchievementState{}, tr.Achievements())
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	deleted, err := tr.DeleteTransaction(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	toggled, err := tr.ToggleTodo(ctx, 42)
	require.NoError(t, err)
	assert.False(t, toggled)

	deleted, err = tr.DeleteTodo(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = tr.DeleteAccount(ctx, "acc_42")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.False(t, tr.CanUndo())

	undone, err := tr.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, undone)
}

func TestBalanceMatchesRecomputationAfterEverySequence(t *testing.T) {
	ctx := context.Background()
	tr, _, clock := newTestTracker(t)

	bank, err := tr.AddAccount(ctx, "Bank", model.AccountBank)
	require.NoError(t, err)
	card, err := tr.AddAccount(ctx, "Card", model.AccountCredit)
	require.NoError(t, err)
	accounts := []string{model.DefaultAccountID, bank.ID, card.ID}

	check := func(step string) {
		t.Helper()
		txs := tr.TransactionsForView(ledger.HomeView)
		for _, id := range accounts {
			assert.True(t, recomputed(txs, id).Equal(tr.BalanceOf(id)), "%s: balance of %s", step, id)
		}
	}

	var ids []int64
	for i := 0; i < 40; i++ {
		clock.Advance(7 * time.Hour)
		from := accounts[i%3]
		switch i % 5 {
		case 0, 1:
			tx, err := tr.AddTransaction(ctx, TransactionInput{Name: "in", Type: model.TypeIncome, Category: "薪資", Account: from, Amount: float64(10 + i)})
			require.NoError(t, err)
			ids = append(ids, tx.ID)
		case 2:
			tx, err := tr.AddTransaction(ctx, TransactionInput{Name: "out", Type: model.TypeExpense, Category: "交通", Account: from, Amount: 0.1 * float64(i)})
			require.NoError(t, err)
			ids = append(ids, tx.ID)
		case 3:
			tx, err := tr.AddTransfer(ctx, TransferInput{From: from, To: accounts[(i+1)%3], Amount: 3.3})
			require.NoError(t, err)
			ids = append(ids, tx.ID)
		case 4:
			_, err := tr.DeleteTransaction(ctx, ids[i/2])
			require.NoError(t, err)
		}
		check("after write")

		if i%4 == 0 {
			_, err := tr.Undo(ctx)
			require.NoError(t, err)
			check("after undo")
		}
		if i%8 == 0 {
			_, err := tr.Redo(ctx)
			require.NoError(t, err)
			check("after redo")
		}
	}

	for tr.CanUndo() {
		_, err := tr.Undo(ctx)
		require.NoError(t, err)
		check("unwinding")
	}
}

func TestIDsStrictlyIncreaseUnderFrozenClock(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	a, err := tr.AddTransaction(ctx, expenseInput("a", 1))
	require.NoError(t, err)
	b, err := tr.AddTransaction(ctx, expenseInput("b", 1))
	require.NoError(t, err)
	todo, err := tr.AddTodo(ctx, TodoInput{Text: "c"})
	require.NoError(t, err)

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, todo.ID)

	acc1, err := tr.AddAccount(ctx, "one", model.AccountBank)
	require.NoError(t, err)
	acc2, err := tr.AddAccount(ctx, "two", model.AccountBank)
	require.NoError(t, err)
	assert.NotEqual(t, acc1.ID, acc2.ID)
}

func TestAchievementsFollowEntryPoints(t *testing.T) {
	ctx := context.Background()
	var reached []achievement.Milestone
	tr, _, clock := newTestTracker(t, WithMilestoneObserver(func(m achievement.Milestone) {
		reached = append(reached, m)
	}))

	for day := 0; day < 7; day++ {
		_, err := tr.AddTransaction(ctx, expenseInput("coffee", 3))
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	state := tr.Achievements()
	assert.Equal(t, 7, state.CurrentStreak)
	assert.True(t, state.Milestones.Streak7)
	assert.Equal(t, 17, state.TotalPoints)
	require.Len(t, reached, 1)
	assert.Equal(t, 7, reached[0].Threshold)

	// Undo and redo do not touch the score.
	_, err := tr.Undo(ctx)
	require.NoError(t, err)
	_, err = tr.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, tr.Achievements())

	// Neither do todos or accounts.
	_, err = tr.AddTodo(ctx, TodoInput{Text: "x"})
	require.NoError(t, err)
	_, err = tr.AddAccount(ctx, "x", model.AccountCash)
	require.NoError(t, err)
	assert.Equal(t, state, tr.Achievements())
}

func TestTodos(t *testing.T) {
	ctx := context.Background()
	tr, _, clock := newTestTracker(t)

	due := "2024-03-05"
	low, err := tr.AddTodo(ctx, TodoInput{Text: "water plants", Priority: model.PriorityLow, DueDate: &due})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	high, err := tr.AddTodo(ctx, TodoInput{Text: "pay rent", Priority: model.PriorityHigh})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local).UTC().Format(createdAtLayout), low.CreatedAt)
	assert.Equal(t, due, *low.DueDate)

	medium, err := tr.AddTodo(ctx, TodoInput{Text: "default priority"})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, medium.Priority)

	byPriority := tr.Todos(ledger.OrderPriority)
	assert.Equal(t, high.ID, byPriority[0].ID)
	inserted := tr.Todos(ledger.OrderInserted)
	assert.Equal(t, low.ID, inserted[0].ID)

	toggled, err := tr.ToggleTodo(ctx, low.ID)
	require.NoError(t, err)
	assert.True(t, toggled)
	assert.True(t, tr.Todos(ledger.OrderInserted)[0].Done)

	_, err = tr.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, tr.Todos(ledger.OrderInserted)[0].Done)

	deleted, err := tr.DeleteTodo(ctx, low.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, tr.Todos(ledger.OrderInserted), 2)

	_, err = tr.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, low.ID, tr.Todos(ledger.OrderInserted)[0].ID)
}

func TestDeleteAccountKeepsTransactions(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	bank, err := tr.AddAccount(ctx, "Bank", model.AccountBank)
	require.NoError(t, err)
	_, err = tr.AddTransaction(ctx, TransactionInput{Name: "pay", Type: model.TypeIncome, Category: "薪資", Account: bank.ID, Amount: 10})
	require.NoError(t, err)

	deleted, err := tr.DeleteAccount(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, ok := tr.Account(bank.ID)
	assert.False(t, ok)
	assert.Len(t, tr.TransactionsForView(ledger.HomeView), 1)
	assert.True(t, dec(10).Equal(tr.BalanceOf(bank.ID)))

	_, err = tr.Undo(ctx)
	require.NoError(t, err)
	accounts := tr.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, bank.ID, accounts[1].ID)
}

func TestHistoryListing(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	_, err := tr.AddTransaction(ctx, expenseInput("first", 1))
	require.NoError(t, err)
	_, err = tr.AddTransaction(ctx, expenseInput("second", 1))
	require.NoError(t, err)
	_, err = tr.AddTransaction(ctx, expenseInput("third", 1))
	require.NoError(t, err)
	_, err = tr.Undo(ctx)
	require.NoError(t, err)

	assert.Equal(t, []HistoryEntry{
		{Description: "add transaction: second"},
		{Description: "add transaction: first"},
		{Description: "add transaction: third", Undone: true},
	}, tr.History())
	assert.Equal(t, "add transaction: third", tr.RedoDescription())
}

type failingKV struct {
	*storage.MemoryStorage
	err error
}

func (f *failingKV) SetMulti(context.Context, map[string][]byte) error { return f.err }

func TestPersistenceFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	tr, err := Open(ctx, &failingKV{MemoryStorage: storage.NewMemoryStorage(), err: boom})
	require.NoError(t, err)

	_, err = tr.AddTransaction(ctx, expenseInput("lunch", 5))
	require.ErrorIs(t, err, boom)

	_, err = tr.Undo(ctx)
	require.ErrorIs(t, err, boom)
}

func indexByID(txs []model.Transaction) map[int64]model.Transaction {
	out := make(map[int64]model.Transaction, len(txs))
	for _, tx := range txs {
		out[tx.ID] = tx
	}
	return out
}
