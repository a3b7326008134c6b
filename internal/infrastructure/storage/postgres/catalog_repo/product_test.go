package catalog_repo

import (
	"strings"
	"testing"

	"larder/internal/domain/filter"
	"larder/internal/infrastructure/storage/postgres"

	"larder/internal/domain/catalogs/product"
)

// The SQL state predicates must agree with product.Classify: zero is
// critical even when min_stock is zero, and the low band is half-open.
func TestStateFilter_Predicates(t *testing.T) {
	cols := postgres.ExtractDBColumns[product.Product]()
	base := NewBaseCatalogRepo[*product.Product](nil, "products", "product", cols, "sku",
		func() *product.Product { return &product.Product{} })

	tests := []struct {
		state    string
		wantFrag string
	}{
		{"critical", "current_quantity <= 0"},
		{"low", "current_quantity > 0 AND current_quantity <= min_stock"},
		{"normal", "current_quantity > min_stock"},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			q, err := stateFilter(base.baseSelect(), filter.Item{
				Field:    StateFilterField,
				Operator: filter.Equal,
				Value:    tt.state,
			})
			if err != nil {
				t.Fatalf("stateFilter failed: %v", err)
			}

			sql, _, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if !strings.Contains(sql, tt.wantFrag) {
				t.Errorf("SQL %q missing predicate %q", sql, tt.wantFrag)
			}
		})
	}
}

func TestStateFilter_RejectsUnknownState(t *testing.T) {
	cols := postgres.ExtractDBColumns[product.Product]()
	base := NewBaseCatalogRepo[*product.Product](nil, "products", "product", cols, "sku",
		func() *product.Product { return &product.Product{} })

	_, err := stateFilter(base.baseSelect(), filter.Item{
		Field:    StateFilterField,
		Operator: filter.Equal,
		Value:    "everything-is-fine",
	})
	if err == nil {
		t.Fatal("expected error for unknown state")
	}
}
