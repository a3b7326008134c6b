// Package category provides the product category catalog.
// Categories group products for filtering and reporting.
package category

import (
	"context"

	"larder/internal/core/apperror"
	"larder/internal/core/entity"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 200
)

// Category groups products (e.g. beverages, dry goods, dairy).
// Deleting a category detaches its products instead of removing them.
type Category struct {
	entity.Catalog

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// New creates a Category with required fields.
func New(name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if len(c.Name) > maxNameLen {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max_length", maxNameLen)
	}

	if c.Description != nil && len(*c.Description) > maxDescriptionLen {
		return apperror.NewValidation("description is too long").
			WithDetail("field", "description").
			WithDetail("max_length", maxDescriptionLen)
	}

	return nil
}
