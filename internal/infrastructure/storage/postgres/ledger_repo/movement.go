// Package ledger_repo provides the PostgreSQL implementation of the
// movement journal. The table is append-only: no UPDATE or DELETE.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain"
	"larder/internal/domain/ledger"
	"larder/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ ledger.Repository = (*MovementRepo)(nil)

var movementCols = postgres.ExtractDBColumns[ledger.Movement]()

// MovementRepo is the PostgreSQL repository for stock movements.
type MovementRepo struct {
	txm *postgres.TxManager
}

// NewMovementRepo creates a movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{txm: txm}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *MovementRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(movementCols...).
		From("movements")
}

// Create appends a movement to the journal.
func (r *MovementRepo) Create(ctx context.Context, m *ledger.Movement) error {
	data := postgres.StructToMap(m)

	q := r.builder().
		Insert("movements").
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID retrieves a single movement.
func (r *MovementRepo) GetByID(ctx context.Context, movementID id.ID) (*ledger.Movement, error) {
	m := &ledger.Movement{}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": movementID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List retrieves movements newest first.
// UUIDv7 ids are time-ordered, so id DESC doubles as a stable tiebreaker.
func (r *MovementRepo) List(ctx context.Context, f ledger.ListFilter) (domain.ListResult[*ledger.Movement], error) {
	result := domain.ListResult[*ledger.Movement]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.baseSelect()

	if f.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *f.ProductID})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.To})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count movements: %w", err)
	}

	q = q.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list movements: %w", err)
	}
	return result, nil
}

// Recent returns the latest n movements across all products.
func (r *MovementRepo) Recent(ctx context.Context, n int) ([]*ledger.Movement, error) {
	if n <= 0 {
		n = 5
	}

	q := r.baseSelect().
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(n))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*ledger.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return items, nil
}

// SumForProduct returns entries minus exits for a product.
func (r *MovementRepo) SumForProduct(ctx context.Context, productID id.ID) (types.Quantity, error) {
	q := r.builder().
		Select("COALESCE(SUM(CASE WHEN type = 'entry' THEN quantity ELSE -quantity END), 0)").
		From("movements").
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build sum query: %w", err)
	}

	var sum types.Quantity
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return types.Zero(), fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
