package category

import (
	"context"

	"larder/internal/core/id"
	"larder/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// CountProducts returns how many products reference the category.
	CountProducts(ctx context.Context, categoryID id.ID) (int64, error)
}
