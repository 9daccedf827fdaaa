// Package main provides a demo program for the dashboard, backed by an
// in-memory ledger filled with sample data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/storage"
	"github.com/Veraticus/lifeledger/internal/tracker"
	"github.com/Veraticus/lifeledger/internal/tui"
)

var merchants = []struct {
	name     string
	category string
}{
	{"全聯", "食物"},
	{"捷運", "交通"},
	{"Netflix", "娛樂"},
	{"星巴克", "食物"},
	{"家樂福", "購物"},
	{"Uber", "交通"},
	{"診所", "醫療"},
	{"台電", "水電瓦斯"},
}

// demoDays is how many consecutive days of records the demo starts with.
const demoDays = 16

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		// Use explicit error check to satisfy forbidigo
		_, _ = fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	now := time.Now().AddDate(0, 0, -demoDays+1)
	tr, err := tracker.Open(ctx, storage.NewMemoryStorage(),
		tracker.WithClock(func() time.Time { return now }))
	if err != nil {
		return err
	}

	bank, err := tr.AddAccount(ctx, "銀行", model.AccountBank)
	if err != nil {
		return err
	}
	if _, err := tr.AddAccount(ctx, "信用卡", model.AccountCredit); err != nil {
		return err
	}

	for day := 0; day < demoDays; day++ {
		if day > 0 {
			now = now.AddDate(0, 0, 1)
		}
		m := merchants[day%len(merchants)]
		if _, err := tr.AddTransaction(ctx, tracker.TransactionInput{
			Name:     m.name,
			Type:     model.TypeExpense,
			Category: m.category,
			Amount:   float64(80 + (day*37)%400),
		}); err != nil {
			return err
		}
		if day%7 == 0 {
			if _, err := tr.AddTransaction(ctx, tracker.TransactionInput{
				Name: "薪水", Type: model.TypeIncome, Category: "薪資", Account: bank.ID, Amount: 12000,
			}); err != nil {
				return err
			}
			if _, err := tr.AddTransfer(ctx, tracker.TransferInput{
				From: bank.ID, To: model.DefaultAccountID, Note: "提款", Amount: 2000,
			}); err != nil {
				return err
			}
		}
	}

	due := model.FormatDate(now.AddDate(0, 0, 2))
	overdue := model.FormatDate(now.AddDate(0, 0, -3))
	for _, in := range []tracker.TodoInput{
		{Text: "繳信用卡費", Priority: model.PriorityHigh, DueDate: &due},
		{Text: "換機油", Priority: model.PriorityMedium, DueDate: &overdue},
		{Text: "整理發票", Priority: model.PriorityLow},
	} {
		if _, err := tr.AddTodo(ctx, in); err != nil {
			return err
		}
	}

	return tui.Run(ctx, tr)
}
