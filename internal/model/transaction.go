// Package model defines the core domain models used throughout the application.
package model

// TransactionType distinguishes money coming in, going out, or moving between accounts.
type TransactionType string

const (
	// TypeIncome represents money received into an account.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent from an account.
	TypeExpense TransactionType = "expense"
	// TypeTransfer represents money moved from one account to another.
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Label returns the localized label used in exports.
func (t TransactionType) Label() string {
	switch t {
	case TypeIncome:
		return "收入"
	case TypeExpense:
		return "支出"
	default:
		return "轉帳"
	}
}

// Transaction represents a single recorded income, expense, or transfer.
// For transfers Account is the source and ToAccount the destination.
type Transaction struct {
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	Account   string          `json:"account"`
	ToAccount string          `json:"toAccount,omitempty"`
	ID        int64           `json:"id"`
	Amount    float64         `json:"amount"`
}

// IsTransfer reports whether the transaction moves money between accounts.
func (t Transaction) IsTransfer() bool {
	return t.Type == TypeTransfer
}

// Touches reports whether the transaction belongs to the given account's view.
func (t Transaction) Touches(accountID string) bool {
	return t.Account == accountID || (t.IsTransfer() && t.ToAccount == accountID)
}
