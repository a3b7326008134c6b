package ledger

import (
	"context"
	"time"

	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain"
)

// ListFilter narrows movement queries.
type ListFilter struct {
	// ProductID limits the journal to one product
	ProductID *id.ID

	// Type limits to entries or exits
	Type *MovementType

	// From and To bound CreatedAt (inclusive)
	From *time.Time
	To   *time.Time

	// Pagination; newest first
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository persists movements. The journal is append-only: there is no
// update or delete.
type Repository interface {
	// Create appends a movement to the journal.
	Create(ctx context.Context, m *Movement) error

	// GetByID retrieves a single movement.
	GetByID(ctx context.Context, id id.ID) (*Movement, error)

	// List retrieves movements newest first.
	List(ctx context.Context, f ListFilter) (domain.ListResult[*Movement], error)

	// Recent returns the latest n movements across all products.
	Recent(ctx context.Context, n int) ([]*Movement, error)

	// SumForProduct returns the signed sum of all movements for a product
	// (entries minus exits).
	SumForProduct(ctx context.Context, productID id.ID) (types.Quantity, error)
}
