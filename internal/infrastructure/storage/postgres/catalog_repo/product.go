package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain/catalogs/product"
	"larder/internal/domain/filter"
	"larder/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// StateFilterField is the virtual list-filter field name accepted by
// List for the computed stock classification.
const StateFilterField = "state"

// ProductRepo is the PostgreSQL repository for products.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	cols := postgres.ExtractDBColumns[product.Product]()
	base := NewBaseCatalogRepo(
		txm,
		"products", "product",
		cols,
		"sku",
		func() *product.Product { return &product.Product{} },
	)
	base.SetSearchCols("name", "sku")
	base.RegisterVirtualFilter(StateFilterField, stateFilter)

	return &ProductRepo{BaseCatalogRepo: base}
}

// stateFilter translates the computed stock state into SQL predicates.
// The classification must match product.Classify.
func stateFilter(q squirrel.SelectBuilder, item filter.Item) (squirrel.SelectBuilder, error) {
	state, _ := item.Value.(string)
	switch product.StockState(state) {
	case product.StateCritical:
		return q.Where(squirrel.Expr("current_quantity <= 0")), nil
	case product.StateLow:
		return q.Where(squirrel.Expr("current_quantity > 0 AND current_quantity <= min_stock")), nil
	case product.StateNormal:
		return q.Where(squirrel.Expr("current_quantity > min_stock")), nil
	default:
		return q, apperror.NewValidation("invalid stock state filter").
			WithDetail("field", StateFilterField).
			WithDetail("value", item.Value)
	}
}

// Delete soft-deletes the product so its ledger history survives.
func (r *ProductRepo) Delete(ctx context.Context, entityID id.ID) error {
	return r.SetActive(ctx, entityID, false)
}

// UpdateQuantity writes the cached quantity without touching other fields.
// The optimistic-locking version is not bumped: quantity changes go through
// the row lock taken by GetForUpdate, not through Update.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, entityID id.ID, quantity types.Quantity) error {
	q := r.Builder().
		Update("products").
		Set("current_quantity", quantity).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update quantity: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", entityID.String())
	}

	return nil
}
