// Package entity provides base types shared by all persisted entities.
package entity

import (
	"context"
	"strings"
	"time"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all persisted entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Active is the soft-delete flag; inactive records stay queryable
	Active bool `db:"active" json:"active"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// CreatedAt is the creation timestamp (UTC)
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewBase creates a Base with generated ID, active flag set and timestamp.
func NewBase() Base {
	return Base{
		ID:        id.New(),
		Active:    true,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
}

// Touch increments version (for optimistic locking).
func (b *Base) Touch() {
	b.Version++
}

// Deactivate marks the entity inactive (soft delete).
func (b *Base) Deactivate() {
	b.Active = false
}

// Activate clears the soft-delete flag.
func (b *Base) Activate() {
	b.Active = true
}

// Catalog is the base type for reference data entities
// (categories, suppliers, products).
type Catalog struct {
	Base

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		Base: NewBase(),
		Name: strings.TrimSpace(name),
	}
}

// Validate checks base catalog invariants.
// Entity-specific length limits are checked by the embedding type.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
