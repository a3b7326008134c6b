// Package report_repo provides PostgreSQL aggregation queries for reports.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"larder/internal/domain/reports"
	"larder/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*DashboardRepo)(nil)

// DashboardRepo aggregates product stock figures for the dashboard.
type DashboardRepo struct {
	txm *postgres.TxManager
}

// NewDashboardRepo creates a dashboard repository.
func NewDashboardRepo(txm *postgres.TxManager) *DashboardRepo {
	return &DashboardRepo{txm: txm}
}

// GetTotals aggregates counts and stock value over active products.
// The low/critical bands must agree with product.Classify.
func (r *DashboardRepo) GetTotals(ctx context.Context) (*reports.Totals, error) {
	const query = `
		SELECT
			COUNT(*) AS total_products,
			COUNT(*) FILTER (WHERE current_quantity <= min_stock) AS low_stock_count,
			COUNT(*) FILTER (WHERE current_quantity <= 0) AS out_of_stock_count,
			COALESCE(SUM(current_quantity * unit_price), 0) AS total_value
		FROM products
		WHERE active = true`

	totals := &reports.Totals{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), totals, query); err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return totals, nil
}

// RecentMovements returns the latest n journal lines with product info.
// UUIDv7 ids are time-ordered, so id DESC is a stable tiebreaker.
func (r *DashboardRepo) RecentMovements(ctx context.Context, n int) ([]*reports.RecentMovement, error) {
	if n <= 0 {
		n = 5
	}

	const query = `
		SELECT
			m.id, m.product_id, m.type, m.quantity, m.reason, m.notes,
			m.actor, m.created_at,
			p.name AS product_name,
			p.sku AS product_sku
		FROM movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $1`

	var items []*reports.RecentMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, query, n); err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return items, nil
}
