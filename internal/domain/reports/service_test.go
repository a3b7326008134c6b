package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain/ledger"
)

type fakeRepo struct {
	totals Totals
	recent []*RecentMovement
}

func (f *fakeRepo) GetTotals(ctx context.Context) (*Totals, error) {
	t := f.totals
	return &t, nil
}

func (f *fakeRepo) RecentMovements(ctx context.Context, n int) ([]*RecentMovement, error) {
	if n >= len(f.recent) {
		return f.recent, nil
	}
	return f.recent[:n], nil
}

func TestService_GetDashboard(t *testing.T) {
	recent := make([]*RecentMovement, 8)
	for i := range recent {
		recent[i] = &RecentMovement{
			Movement:    *ledger.New(id.New(), ledger.TypeEntry, types.Must("1"), "test"),
			ProductName: "Tomatoes",
			ProductSKU:  "VEG-001",
		}
	}

	svc := NewService(&fakeRepo{
		totals: Totals{
			TotalProducts:   12,
			LowStockCount:   3,
			OutOfStockCount: 1,
			TotalValue:      types.Must("410.50"),
		},
		recent: recent,
	}, 5)

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 12, d.TotalProducts)
	assert.EqualValues(t, 3, d.LowStockCount)
	assert.EqualValues(t, 1, d.OutOfStockCount)
	assert.True(t, d.TotalValue.Equal(types.Must("410.50")))
	assert.Len(t, d.RecentMovements, 5)
	assert.Equal(t, "VEG-001", d.RecentMovements[0].ProductSKU)
}

func TestService_GetDashboard_EmptyJournal(t *testing.T) {
	svc := NewService(&fakeRepo{}, 5)

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.RecentMovements)
	assert.Empty(t, d.RecentMovements)
}
