package product

import (
	"context"

	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain"
)

// Repository defines the interface for Product persistence.
// GetByKey and ExistsByKey operate on the SKU.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetForUpdate retrieves a product with a row lock.
	// Must be called inside a transaction; concurrent movements against
	// the same product serialize on this lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// UpdateQuantity writes the cached quantity without touching other
	// fields or the optimistic-locking version.
	UpdateQuantity(ctx context.Context, id id.ID, quantity types.Quantity) error
}
