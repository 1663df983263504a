package catalog

import (
	"strings"

	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

// Categories returns the full set: built-ins first, then custom entries in
// insertion order.
func (s *Store) Categories() []string {
	out := make([]string, 0, len(s.builtin)+len(s.custom))
	out = append(out, s.builtin...)
	out = append(out, s.custom...)
	return out
}

// CustomCategories returns the user-added entries, for persistence.
func (s *Store) CustomCategories() []string {
	return append([]string(nil), s.custom...)
}

// HasCategory reports membership across both sets. Comparison is
// case-sensitive exact match.
func (s *Store) HasCategory(name string) bool {
	for _, candidate := range s.builtin {
		if candidate == name {
			return true
		}
	}
	for _, candidate := range s.custom {
		if candidate == name {
			return true
		}
	}
	return false
}

// AddCategory appends a custom category.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if s.HasCategory(name) {
		return pkgerrors.New(pkgerrors.CodeDuplicateCategory, "category already exists").WithDetails(map[string]any{
			"category": name,
		})
	}
	s.custom = append(s.custom, name)
	return nil
}

// RemoveCategory deletes a custom category. Built-ins stay; a category
// still referenced by any product is protected.
func (s *Store) RemoveCategory(name string) error {
	for _, candidate := range s.builtin {
		if candidate == name {
			return pkgerrors.New(pkgerrors.CodeValidation, "built-in categories cannot be removed")
		}
	}

	index := -1
	for i, candidate := range s.custom {
		if candidate == name {
			index = i
			break
		}
	}
	if index < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	for _, product := range s.products {
		if product.Category == name {
			return pkgerrors.New(pkgerrors.CodeCategoryInUse, "category is still in use").WithDetails(map[string]any{
				"category":   name,
				"product_id": product.ID.String(),
			})
		}
	}

	s.custom = append(s.custom[:index], s.custom[index+1:]...)
	return nil
}

// RestoreCustomCategories replaces the custom list wholesale when reloading
// persisted state.
func (s *Store) RestoreCustomCategories(names []string) {
	s.custom = append([]string(nil), names...)
}
