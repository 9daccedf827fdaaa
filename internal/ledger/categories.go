package ledger

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/model"
)

// CategoryRemoval captures everything needed to undo a category removal.
type CategoryRemoval struct {
	Type       model.TransactionType `json:"type"`
	Name       string                `json:"name"`
	Reassigned []int64               `json:"reassigned"`
	Index      int                   `json:"index"`
}

// CategoriesFor returns the default categories of t followed by its custom ones.
func (s *Store) CategoriesFor(t model.TransactionType) []string {
	return append(model.DefaultCategories(t), s.custom.For(t)...)
}

// CustomCategories returns a copy of the user-defined categories.
func (s *Store) CustomCategories() model.CustomCategories {
	return s.custom.Clone()
}

// HasCategory reports whether name is a default or custom category of t.
func (s *Store) HasCategory(t model.TransactionType, name string) bool {
	return model.IsDefaultCategory(t, name) || slices.Contains(s.custom.For(t), name)
}

// ValidateNewCategory checks that name can be added to t's custom categories.
func (s *Store) ValidateNewCategory(t model.TransactionType, name string) error {
	if !model.CustomizableType(t) {
		return common.Validationf("categories of type %q cannot be customized", t)
	}
	if strings.TrimSpace(name) == "" {
		return common.Validationf("category name cannot be empty")
	}
	if s.HasCategory(t, name) {
		return fmt.Errorf("%w: %q", common.ErrDuplicateCategory, name)
	}
	return nil
}

// AddCategory appends name to t's custom categories.
func (s *Store) AddCategory(t model.TransactionType, name string) error {
	if err := s.ValidateNewCategory(t, name); err != nil {
		return err
	}
	s.custom.Set(t, append(s.custom.For(t), name))
	slog.Debug("added category", "type", t, "name", name)
	return nil
}

// InsertCategory puts a custom category back at index. Used to undo a removal.
func (s *Store) InsertCategory(t model.TransactionType, index int, name string) {
	names := s.custom.For(t)
	if slices.Contains(names, name) {
		return
	}
	s.custom.Set(t, slices.Insert(slices.Clone(names), clampIndex(index, len(names)), name))
}

// DeleteCategory drops name from t's custom categories without touching
// transactions. Used to undo an add.
func (s *Store) DeleteCategory(t model.TransactionType, name string) {
	names := s.custom.For(t)
	if i := slices.Index(names, name); i >= 0 {
		s.custom.Set(t, slices.Delete(slices.Clone(names), i, i+1))
	}
}

// ValidateCategoryRemoval checks that name is a removable custom category of t.
func (s *Store) ValidateCategoryRemoval(t model.TransactionType, name string) error {
	if model.IsDefaultCategory(t, name) {
		return fmt.Errorf("%w: %q", common.ErrNotRemovable, name)
	}
	if !slices.Contains(s.custom.For(t), name) {
		return fmt.Errorf("category %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// RemoveCategory reassigns every transaction of type t filed under name to the
// sentinel category, then removes name from the custom set. Both steps happen
// or neither does.
func (s *Store) RemoveCategory(t model.TransactionType, name string) (CategoryRemoval, error) {
	if err := s.ValidateCategoryRemoval(t, name); err != nil {
		return CategoryRemoval{}, err
	}

	names := s.custom.For(t)
	removal := CategoryRemoval{
		Type:  t,
		Name:  name,
		Index: slices.Index(names, name),
	}
	for i := range s.transactions {
		if s.transactions[i].Type == t && s.transactions[i].Category == name {
			s.transactions[i].Category = model.SentinelCategory
			removal.Reassigned = append(removal.Reassigned, s.transactions[i].ID)
		}
	}
	s.custom.Set(t, slices.Delete(slices.Clone(names), removal.Index, removal.Index+1))

	slog.Debug("removed category",
		"type", t,
		"name", name,
		"reassigned", len(removal.Reassigned))
	return removal, nil
}

// RestoreCategory undoes a RemoveCategory: the category returns to its former
// position and the reassigned transactions get it back.
func (s *Store) RestoreCategory(r CategoryRemoval) {
	s.InsertCategory(r.Type, r.Index, r.Name)
	for _, id := range r.Reassigned {
		if i := s.transactionIndex(id); i >= 0 && s.transactions[i].Category == model.SentinelCategory {
			s.transactions[i].Category = r.Name
		}
	}
}
