package cli

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/model"
)

// FormatAmount renders an amount as whole dollars, e.g. "$-50".
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(0)
}

// StyleAmount colors an amount green when non-negative and red otherwise.
func StyleAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return ErrorStyle.Render(FormatAmount(d))
	}
	return SuccessStyle.Render(FormatAmount(d))
}

// PriorityIcon returns the colored dot shown next to a todo.
func PriorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "🔴"
	case model.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatTodo renders one todo line. Done todos are dimmed; overdue ones are
// flagged.
func FormatTodo(t model.Todo, today string) string {
	line := PriorityIcon(t.Priority) + " " + t.Text
	if t.DueDate != nil {
		line += " " + CalendarIcon + " " + *t.DueDate
	}
	switch {
	case t.Done:
		return CheckIcon + " " + SubtleStyle.Strikethrough(true).Render(line)
	case t.IsOverdue(today):
		return ErrorStyle.Render(line + " (overdue)")
	}
	return line
}
