package tracker

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/interchange"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/storage"
)

func TestReopenRestoresEverything(t *testing.T) {
	ctx := context.Background()
	tr, kv, clock := newTestTracker(t)

	bank, err := tr.AddAccount(ctx, "Bank", model.AccountBank)
	require.NoError(t, err)
	require.NoError(t, tr.AddCategory(ctx, model.TypeExpense, "旅遊"))
	tx, err := tr.AddTransaction(ctx, TransactionInput{Name: "hotel", Type: model.TypeExpense, Category: "旅遊", Account: bank.ID, Amount: 80})
	require.NoError(t, err)
	_, err = tr.AddTodo(ctx, TodoInput{Text: "book train"})
	require.NoError(t, err)
	_, err = tr.Undo(ctx)
	require.NoError(t, err)

	reopened, err := Open(ctx, kv, WithClock(clock.Now))
	require.NoError(t, err)

	assert.Equal(t, tr.Accounts(), reopened.Accounts())
	assert.Equal(t, tr.TransactionsForView(ledger.HomeView), reopened.TransactionsForView(ledger.HomeView))
	assert.Equal(t, tr.Todos(ledger.OrderInserted), reopened.Todos(ledger.OrderInserted))
	assert.Equal(t, tr.CustomCategories(), reopened.CustomCategories())
	assert.Equal(t, tr.Achievements(), reopened.Achievements())
	assert.Equal(t, tr.History(), reopened.History())

	// The restored history still drives the restored store.
	redone, err := reopened.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, redone)
	assert.Len(t, reopened.Todos(ledger.OrderInserted), 1)

	undone, err := reopened.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, undone)
	_, err = reopened.Undo(ctx)
	require.NoError(t, err)
	assert.NotContains(t, indexByID(reopened.TransactionsForView(ledger.HomeView)), tx.ID)

	// New ids stay above the ones loaded from storage.
	next, err := reopened.AddTransaction(ctx, expenseInput("later", 1))
	require.NoError(t, err)
	assert.Greater(t, next.ID, tx.ID)
}

func TestReopenWithSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	open := func() (*Tracker, *storage.SQLiteStorage) {
		store, err := storage.NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Migrate(ctx))
		tr, err := Open(ctx, store)
		require.NoError(t, err)
		return tr, store
	}

	tr, store := open()
	_, err := tr.AddTransaction(ctx, TransactionInput{Name: "salary", Type: model.TypeIncome, Category: "薪資", Amount: 1200.5})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, store := open()
	defer func() { _ = store.Close() }()
	assert.True(t, dec(1200.5).Equal(reopened.BalanceOf(model.DefaultAccountID)))
	assert.Equal(t, "add transaction: salary", reopened.UndoDescription())
}

func TestOpen_CorruptData(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt collection fails", func(t *testing.T) {
		kv := storage.NewMemoryStorage()
		require.NoError(t, kv.SetMulti(ctx, map[string][]byte{KeyTransactions: []byte("{")}))
		_, err := Open(ctx, kv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), KeyTransactions)
	})

	t.Run("corrupt history is dropped", func(t *testing.T) {
		kv := storage.NewMemoryStorage()
		require.NoError(t, kv.SetMulti(ctx, map[string][]byte{
			KeyTodos:   []byte(`[{"id":1,"text":"keep me","priority":"low","createdAt":"2024-03-01","done":false}]`),
			KeyHistory: []byte(`not json`),
		}))
		tr, err := Open(ctx, kv)
		require.NoError(t, err)
		assert.False(t, tr.CanUndo())
		assert.Len(t, tr.Todos(ledger.OrderInserted), 1)
	})

	t.Run("history with unknown command is dropped", func(t *testing.T) {
		kv := storage.NewMemoryStorage()
		require.NoError(t, kv.SetMulti(ctx, map[string][]byte{
			KeyHistory: []byte(`{"undo":[{"kind":"launch_rocket"}],"redo":[]}`),
		}))
		tr, err := Open(ctx, kv)
		require.NoError(t, err)
		assert.False(t, tr.CanUndo())
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *Tracker {
		t.Helper()
		tr, _, _ := newTestTracker(t)
		_, err := tr.AddAccount(ctx, "Bank", model.AccountBank)
		require.NoError(t, err)
		_, err = tr.AddTransaction(ctx, expenseInput("old", 10))
		require.NoError(t, err)
		return tr
	}

	t.Run("malformed input changes nothing", func(t *testing.T) {
		tr := seed(t)
		accounts := tr.Accounts()
		txs := tr.TransactionsForView(ledger.HomeView)
		history := tr.History()

		err := tr.ImportJSON(ctx, strings.NewReader(`{"transactions": [{"id": 1, "amount": "lots"}]}`))
		require.ErrorIs(t, err, common.ErrImportFormat)

		assert.Equal(t, accounts, tr.Accounts())
		assert.Equal(t, txs, tr.TransactionsForView(ledger.HomeView))
		assert.Equal(t, history, tr.History())
	})

	t.Run("payload without accounts keeps accounts", func(t *testing.T) {
		tr := seed(t)
		accounts := tr.Accounts()

		err := tr.ImportJSON(ctx, strings.NewReader(`{"transactions":[{"id":7,"name":"imported","type":"income","category":"獎金","date":"2024-01-02","account":"default","amount":5}],"todos":[]}`))
		require.NoError(t, err)

		assert.Equal(t, accounts, tr.Accounts())
		txs := tr.TransactionsForView(ledger.HomeView)
		require.Len(t, txs, 1)
		assert.Equal(t, "imported", txs[0].Name)
		assert.False(t, tr.CanUndo())
		assert.True(t, dec(5).Equal(tr.BalanceOf(model.DefaultAccountID)))
	})

	t.Run("payload with accounts replaces them", func(t *testing.T) {
		tr := seed(t)

		err := tr.Import(ctx, interchange.Payload{
			Accounts: []model.Account{{ID: "acc_9", Name: "Savings", Type: model.AccountBank}},
		})
		require.NoError(t, err)

		accounts := tr.Accounts()
		require.Len(t, accounts, 2)
		assert.Equal(t, model.DefaultAccountID, accounts[0].ID)
		assert.Equal(t, "acc_9", accounts[1].ID)
		assert.Empty(t, tr.TransactionsForView(ledger.HomeView))
	})

	t.Run("export then import round trips", func(t *testing.T) {
		tr := seed(t)
		var buf bytes.Buffer
		require.NoError(t, tr.Export(&buf))

		other, _, _ := newTestTracker(t)
		require.NoError(t, other.ImportJSON(ctx, &buf))
		assert.Equal(t, tr.Accounts(), other.Accounts())
		assert.Equal(t, tr.TransactionsForView(ledger.HomeView), other.TransactionsForView(ledger.HomeView))
	})
}

func TestImportStatement(t *testing.T) {
	ctx := context.Background()
	drafts := []model.Transaction{
		{Name: "STARBUCKS", Type: model.TypeExpense, Category: model.SentinelCategory, Date: "2024-01-15", Amount: 25.5},
		{Name: "ACME PAYROLL", Type: model.TypeIncome, Category: model.SentinelCategory, Date: "2024-01-20", Amount: 1500},
	}

	t.Run("records every draft", func(t *testing.T) {
		tr, _, _ := newTestTracker(t)
		bank, err := tr.AddAccount(ctx, "Checking", model.AccountBank)
		require.NoError(t, err)

		var ticks int
		recorded, err := tr.ImportStatement(ctx, drafts, bank.ID, func() { ticks++ })
		require.NoError(t, err)
		require.Len(t, recorded, 2)
		assert.Equal(t, 2, ticks)
		assert.True(t, dec(1474.5).Equal(tr.BalanceOf(bank.ID)))
		assert.Less(t, recorded[0].ID, recorded[1].ID)
		assert.Equal(t, 2, tr.Achievements().TotalRecords)

		// Each line is undone on its own.
		_, err = tr.Undo(ctx)
		require.NoError(t, err)
		assert.True(t, dec(-25.5).Equal(tr.BalanceOf(bank.ID)))
	})

	t.Run("one bad line rejects the statement", func(t *testing.T) {
		tr, _, _ := newTestTracker(t)
		bad := append([]model.Transaction{}, drafts...)
		bad = append(bad, model.Transaction{Name: "HOLD", Type: model.TypeExpense, Category: model.SentinelCategory, Amount: 0})

		_, err := tr.ImportStatement(ctx, bad, "", nil)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Empty(t, tr.TransactionsForView(ledger.HomeView))
		assert.False(t, tr.CanUndo())
	})

	t.Run("unknown account", func(t *testing.T) {
		tr, _, _ := newTestTracker(t)
		_, err := tr.ImportStatement(ctx, drafts, "acc_nowhere", nil)
		require.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)
	_, err := tr.AddTransaction(ctx, TransactionInput{Name: "bus", Type: model.TypeExpense, Category: "交通", Date: "2024-02-28", Amount: 1.5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.ExportCSV(&buf))
	assert.Equal(t, "\ufeff類型,項目,金額,分類,日期,帳戶\n支出,bus,1.5,交通,2024-02-28,現金\n", buf.String())
}

func TestExportStampsClock(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	var buf bytes.Buffer
	require.NoError(t, tr.Export(&buf))
	assert.Contains(t, buf.String(), clock.now.UTC().Format("2006-01-02T15:04:05"))
	assert.Equal(t, clock.now, tr.Now())
}
