package dto

import (
	"larder/internal/core/types"
	"larder/internal/domain/reports"
)

// RecentMovementResponse is a journal line with product info for the dashboard.
type RecentMovementResponse struct {
	MovementResponse
	ProductName string `json:"productName"`
	ProductSKU  string `json:"productSku"`
}

// DashboardResponse is the response body for the inventory dashboard.
type DashboardResponse struct {
	TotalProducts   int64                     `json:"totalProducts"`
	LowStockCount   int64                     `json:"lowStockCount"`
	OutOfStockCount int64                     `json:"outOfStockCount"`
	TotalValue      types.Money               `json:"totalValue"`
	RecentMovements []*RecentMovementResponse `json:"recentMovements"`
}

// FromDashboard creates response DTO from the reports aggregate.
func FromDashboard(d *reports.Dashboard) *DashboardResponse {
	recent := make([]*RecentMovementResponse, len(d.RecentMovements))
	for i, m := range d.RecentMovements {
		recent[i] = &RecentMovementResponse{
			MovementResponse: *FromMovement(&m.Movement),
			ProductName:      m.ProductName,
			ProductSKU:       m.ProductSKU,
		}
	}

	return &DashboardResponse{
		TotalProducts:   d.TotalProducts,
		LowStockCount:   d.LowStockCount,
		OutOfStockCount: d.OutOfStockCount,
		TotalValue:      d.TotalValue,
		RecentMovements: recent,
	}
}
