package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/model"
)

// BalanceOf derives an account's balance from the transactions:
// income - expense + transfers in - transfers out.
//
// It is recomputed on every call. The Balance field stored on model.Account is
// never consulted here and may disagree with this value.
func (s *Store) BalanceOf(accountID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case model.TypeIncome:
			if t.Account == accountID {
				total = total.Add(amount)
			}
		case model.TypeExpense:
			if t.Account == accountID {
				total = total.Sub(amount)
			}
		case model.TypeTransfer:
			if t.ToAccount == accountID {
				total = total.Add(amount)
			}
			if t.Account == accountID {
				total = total.Sub(amount)
			}
		}
	}
	return total
}

// AccountBalance pairs an account with its derived balance.
type AccountBalance struct {
	Account model.Account
	Balance decimal.Decimal
}

// Balances returns every account with its derived balance, in display order.
func (s *Store) Balances() []AccountBalance {
	out := make([]AccountBalance, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, AccountBalance{Account: a, Balance: s.BalanceOf(a.ID)})
	}
	return out
}
