package postgres

import (
	"sort"
	"testing"

	"larder/internal/domain/catalogs/product"
)

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	want := []string{
		"id", "active", "version", "created_at", "name", "description",
		"sku", "current_quantity", "unit", "min_stock", "unit_price",
		"category_id", "supplier_id",
	}

	sort.Strings(cols)
	sort.Strings(want)

	if len(cols) != len(want) {
		t.Fatalf("column count mismatch\nwant: %v\ngot:  %v", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column mismatch at %d: want %s, got %s", i, want[i], cols[i])
		}
	}
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	p := product.New("Tomatoes", "VEG-001", "kg")

	m := StructToMap(p)

	if m["name"] != "Tomatoes" {
		t.Errorf("expected name Tomatoes, got %v", m["name"])
	}
	if m["sku"] != "VEG-001" {
		t.Errorf("expected sku VEG-001, got %v", m["sku"])
	}
	if m["id"] != p.ID {
		t.Errorf("embedded id not extracted")
	}
	if m["active"] != true {
		t.Errorf("embedded active flag not extracted")
	}
	if _, ok := m["nonexistent"]; ok {
		t.Error("unexpected key in map")
	}
}
