package ledger

import (
	"math"
	"strings"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/model"
)

// ValidateTransaction checks a new transaction against the current store:
// required fields, a positive amount, known accounts, and a category that
// belongs to the type's set. Categories are only checked here, at creation.
func (s *Store) ValidateTransaction(t model.Transaction) error {
	if err := ValidateTransactionShape(t); err != nil {
		return err
	}
	if _, ok := s.Account(t.Account); !ok {
		return common.Validationf("unknown account %q", t.Account)
	}
	if t.IsTransfer() {
		if _, ok := s.Account(t.ToAccount); !ok {
			return common.Validationf("unknown destination account %q", t.ToAccount)
		}
		return nil
	}
	if !s.HasCategory(t.Type, t.Category) {
		return common.Validationf("category %q is not a %s category", t.Category, t.Type)
	}
	return nil
}

// ValidateTransactionShape checks the invariants that hold for any stored
// transaction regardless of the store's contents.
func ValidateTransactionShape(t model.Transaction) error {
	if strings.TrimSpace(t.Name) == "" {
		return common.Validationf("missing name")
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return common.Validationf("amount must be positive, got %v", t.Amount)
	}
	if !t.Type.Valid() {
		return common.Validationf("invalid transaction type %q", t.Type)
	}
	if t.Account == "" {
		return common.Validationf("missing account")
	}
	if _, err := model.ParseDate(t.Date); err != nil {
		return common.Validationf("%v", err)
	}
	if t.IsTransfer() {
		if t.ToAccount == "" {
			return common.Validationf("transfer needs a destination account")
		}
		if t.ToAccount == t.Account {
			return common.Validationf("transfer source and destination must differ")
		}
		return nil
	}
	if t.ToAccount != "" {
		return common.Validationf("only transfers have a destination account")
	}
	if strings.TrimSpace(t.Category) == "" {
		return common.Validationf("missing category")
	}
	return nil
}

// ValidateTodo checks a todo's required fields.
func ValidateTodo(t model.Todo) error {
	if strings.TrimSpace(t.Text) == "" {
		return common.Validationf("missing todo text")
	}
	if !t.Priority.Valid() {
		return common.Validationf("invalid priority %q", t.Priority)
	}
	if t.DueDate != nil {
		if _, err := model.ParseDate(*t.DueDate); err != nil {
			return common.Validationf("%v", err)
		}
	}
	return nil
}

// ValidateAccount checks an account's required fields.
func ValidateAccount(a model.Account) error {
	if strings.TrimSpace(a.ID) == "" {
		return common.Validationf("missing account id")
	}
	if strings.TrimSpace(a.Name) == "" {
		return common.Validationf("missing account name")
	}
	if !a.Type.Valid() {
		return common.Validationf("invalid account type %q", a.Type)
	}
	return nil
}
