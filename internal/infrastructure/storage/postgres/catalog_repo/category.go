package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"larder/internal/core/id"
	"larder/internal/domain/catalogs/category"
	"larder/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo is the PostgreSQL repository for categories.
// Categories are hard-deleted; the products FK is ON DELETE SET NULL,
// so deleting a category detaches its products.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	cols := postgres.ExtractDBColumns[category.Category]()
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"categories", "category",
			cols,
			"name",
			func() *category.Category { return &category.Category{} },
		),
	}
}

// CountProducts returns how many products reference the category.
func (r *CategoryRepo) CountProducts(ctx context.Context, categoryID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From("products").
		Where(squirrel.Eq{"category_id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
