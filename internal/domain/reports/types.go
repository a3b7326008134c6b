// Package reports provides dashboard and summary queries.
package reports

import (
	"larder/internal/core/types"
	"larder/internal/domain/ledger"
)

// RecentMovement is a journal line joined with its product for display.
type RecentMovement struct {
	ledger.Movement

	ProductName string `db:"product_name" json:"productName"`
	ProductSKU  string `db:"product_sku" json:"productSku"`
}

// Dashboard is the inventory overview shown on the landing page.
type Dashboard struct {
	// TotalProducts counts active products
	TotalProducts int64 `json:"totalProducts"`

	// LowStockCount counts active products at or below their minimum
	// (includes out-of-stock products)
	LowStockCount int64 `json:"lowStockCount"`

	// OutOfStockCount counts active products with zero quantity
	OutOfStockCount int64 `json:"outOfStockCount"`

	// TotalValue is the sum of quantity times unit price over active products
	TotalValue types.Money `json:"totalValue"`

	// RecentMovements is the newest slice of the journal
	RecentMovements []*RecentMovement `json:"recentMovements"`
}

// Totals is the product-level aggregate part of the dashboard.
type Totals struct {
	TotalProducts   int64       `db:"total_products"`
	LowStockCount   int64       `db:"low_stock_count"`
	OutOfStockCount int64       `db:"out_of_stock_count"`
	TotalValue      types.Money `db:"total_value"`
}
