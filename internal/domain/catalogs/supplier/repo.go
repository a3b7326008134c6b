package supplier

import (
	"context"

	"larder/internal/core/id"
	"larder/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// CountProducts returns how many products reference the supplier.
	CountProducts(ctx context.Context, supplierID id.ID) (int64, error)
}
