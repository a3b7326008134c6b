package reports

import (
	"context"
)

// Repository defines report data access.
type Repository interface {
	// GetTotals aggregates counts and stock value over active products.
	GetTotals(ctx context.Context) (*Totals, error)

	// RecentMovements returns the latest n journal lines joined with
	// product name and SKU.
	RecentMovements(ctx context.Context, n int) ([]*RecentMovement, error)
}
