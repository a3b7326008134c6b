package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"larder/internal/core/id"
	"larder/internal/domain/catalogs/supplier"
	"larder/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ supplier.Repository = (*SupplierRepo)(nil)

// SupplierRepo is the PostgreSQL repository for suppliers.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	cols := postgres.ExtractDBColumns[supplier.Supplier]()
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"suppliers", "supplier",
			cols,
			"name",
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// Delete soft-deletes the supplier. Products and historical movements
// keep their reference.
func (r *SupplierRepo) Delete(ctx context.Context, entityID id.ID) error {
	return r.SetActive(ctx, entityID, false)
}

// CountProducts returns how many products reference the supplier.
func (r *SupplierRepo) CountProducts(ctx context.Context, supplierID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From("products").
		Where(squirrel.Eq{"supplier_id": supplierID})

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
