package model

// Priority ranks todos.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Todo is a task tracked alongside the ledger.
type Todo struct {
	DueDate   *string  `json:"dueDate"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	CreatedAt string   `json:"createdAt"`
	ID        int64    `json:"id"`
	Done      bool     `json:"done"`
}

// IsOverdue reports whether an unfinished todo's due date is before today.
// Dates compare lexically since both use DateLayout.
func (t Todo) IsOverdue(today string) bool {
	return !t.Done && t.DueDate != nil && *t.DueDate < today
}

// Clone returns a copy that shares no pointers with t.
func (t Todo) Clone() Todo {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
