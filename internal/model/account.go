package model

// DefaultAccountID is the reserved id of the account that always exists.
const DefaultAccountID = "default"

// AccountType identifies what kind of store of money an account is.
type AccountType string

const (
	// AccountCash is physical cash.
	AccountCash AccountType = "cash"
	// AccountBank is a bank account.
	AccountBank AccountType = "bank"
	// AccountCredit is a credit card.
	AccountCredit AccountType = "credit"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBank, AccountCredit:
		return true
	}
	return false
}

// Label returns the localized display label.
func (t AccountType) Label() string {
	switch t {
	case AccountBank:
		return "銀行帳戶"
	case AccountCredit:
		return "信用卡"
	default:
		return "現金"
	}
}

// Account is a place money lives. Balance is a display cache only and is
// never used for calculations; balances are always derived from transactions.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance float64     `json:"balance"`
}

// DefaultAccount returns the undeletable cash account.
func DefaultAccount() Account {
	return Account{ID: DefaultAccountID, Name: "現金", Type: AccountCash}
}
