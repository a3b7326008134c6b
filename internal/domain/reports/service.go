package reports

import (
	"context"
	"fmt"
)

// Service provides report generation operations.
type Service struct {
	repo Repository

	recentLimit int
}

// NewService creates a new reports service.
func NewService(repo Repository, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Service{
		repo:        repo,
		recentLimit: recentLimit,
	}
}

// GetDashboard builds the inventory overview.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	totals, err := s.repo.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dashboard totals: %w", err)
	}

	recent, err := s.repo.RecentMovements(ctx, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("get recent movements: %w", err)
	}
	if recent == nil {
		recent = []*RecentMovement{}
	}

	return &Dashboard{
		TotalProducts:   totals.TotalProducts,
		LowStockCount:   totals.LowStockCount,
		OutOfStockCount: totals.OutOfStockCount,
		TotalValue:      totals.TotalValue,
		RecentMovements: recent,
	}, nil
}
