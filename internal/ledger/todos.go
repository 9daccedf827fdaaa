package ledger

import (
	"fmt"
	"sort"

	"github.com/Veraticus/lifeledger/internal/model"
)

// TodoOrder selects how todos are listed.
type TodoOrder string

const (
	// OrderInserted keeps the stored order.
	OrderInserted TodoOrder = ""
	// OrderPriority lists high priority first.
	OrderPriority TodoOrder = "priority"
	// OrderDueDate lists the earliest due date first; todos without one go last.
	OrderDueDate TodoOrder = "dueDate"
	// OrderCreated lists the newest todo first.
	OrderCreated TodoOrder = "created"
)

// ParseTodoOrder validates an order name.
func ParseTodoOrder(s string) (TodoOrder, error) {
	switch o := TodoOrder(s); o {
	case OrderInserted, OrderPriority, OrderDueDate, OrderCreated:
		return o, nil
	}
	return OrderInserted, fmt.Errorf("unknown todo order %q", s)
}

// SortTodos returns a sorted copy of todos. The stored order is never changed.
func SortTodos(todos []model.Todo, order TodoOrder) []model.Todo {
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		out[i] = t.Clone()
	}

	switch order {
	case OrderPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case OrderDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return *a < *b
		})
	case OrderCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}
	return out
}
