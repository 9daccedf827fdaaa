package ledger

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/model"
)

// Summary totals a set of transactions as seen from one view.
type Summary struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	TransferIn  decimal.Decimal
	TransferOut decimal.Decimal
	Balance     decimal.Decimal
}

// Summarize totals txs for view. Transfers only count for account views; in the
// home view they move money between the user's own accounts and net to zero.
func Summarize(txs []model.Transaction, view string) Summary {
	sum := Summary{
		Income:      decimal.Zero,
		Expense:     decimal.Zero,
		TransferIn:  decimal.Zero,
		TransferOut: decimal.Zero,
	}
	for _, t := range txs {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case model.TypeIncome:
			sum.Income = sum.Income.Add(amount)
		case model.TypeExpense:
			sum.Expense = sum.Expense.Add(amount)
		case model.TypeTransfer:
			if view == HomeView {
				continue
			}
			if t.ToAccount == view {
				sum.TransferIn = sum.TransferIn.Add(amount)
			}
			if t.Account == view {
				sum.TransferOut = sum.TransferOut.Add(amount)
			}
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense).Add(sum.TransferIn).Sub(sum.TransferOut)
	return sum
}

// FilterByDate keeps transactions dated within [start, end]. An empty bound is open.
func FilterByDate(txs []model.Transaction, start, end string) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if start != "" && t.Date < start {
			continue
		}
		if end != "" && t.Date > end {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortedByDateDesc returns txs newest first. Same-day transactions keep their order.
func SortedByDateDesc(txs []model.Transaction) []model.Transaction {
	out := slices.Clone(txs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ExpenseByCategory sums expenses per category, largest first.
func ExpenseByCategory(txs []model.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != model.TypeExpense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(decimal.NewFromFloat(t.Amount))
	}

	out := make([]CategoryTotal, 0, len(totals))
	for c, total := range totals {
		out = append(out, CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Total.Cmp(out[j].Total); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyTotal is one point of the income/expense trend.
type DailyTotal struct {
	Date    string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailyTotals groups txs by date, oldest first. Dates with only transfers
// appear with zero totals.
func DailyTotals(txs []model.Transaction) []DailyTotal {
	byDate := make(map[string]*DailyTotal)
	for _, t := range txs {
		day, ok := byDate[t.Date]
		if !ok {
			day = &DailyTotal{Date: t.Date, Income: decimal.Zero, Expense: decimal.Zero}
			byDate[t.Date] = day
		}
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case model.TypeIncome:
			day.Income = day.Income.Add(amount)
		case model.TypeExpense:
			day.Expense = day.Expense.Add(amount)
		}
	}

	out := make([]DailyTotal, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
