package model

// SentinelCategory receives transactions whose custom category was removed.
// It is a default category for both income and expense.
const SentinelCategory = "其他"

// TransferCategory is the only category transfers are recorded under.
const TransferCategory = "轉帳"

var defaultCategories = map[TransactionType][]string{
	TypeExpense: {
		"食物", "交通", "娛樂", "購物", "醫療", "教育", "居家",
		"寵物", "保險", "水電瓦斯", "綜合性", "電話網路", "貸款", SentinelCategory,
	},
	TypeIncome: {
		"薪資", "獎金", "投資", "兼職", "教學鐘點費", "意外之喜", "人家轉帳的", SentinelCategory,
	},
	TypeTransfer: {TransferCategory},
}

// DefaultCategories returns a copy of the fixed categories for a transaction type.
func DefaultCategories(t TransactionType) []string {
	return append([]string(nil), defaultCategories[t]...)
}

// IsDefaultCategory reports whether name is one of the fixed categories for t.
func IsDefaultCategory(t TransactionType, name string) bool {
	for _, c := range defaultCategories[t] {
		if c == name {
			return true
		}
	}
	return false
}

// CustomizableType reports whether user-defined categories may be added for t.
func CustomizableType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// CustomCategories holds the user-defined categories per transaction type,
// in the order they were added.
type CustomCategories struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// For returns the custom categories for t.
func (c CustomCategories) For(t TransactionType) []string {
	switch t {
	case TypeExpense:
		return c.Expense
	case TypeIncome:
		return c.Income
	}
	return nil
}

// Set replaces the custom categories for t.
func (c *CustomCategories) Set(t TransactionType, names []string) {
	switch t {
	case TypeExpense:
		c.Expense = names
	case TypeIncome:
		c.Income = names
	}
}

// Clone returns a deep copy.
func (c CustomCategories) Clone() CustomCategories {
	return CustomCategories{
		Expense: append([]string(nil), c.Expense...),
		Income:  append([]string(nil), c.Income...),
	}
}
