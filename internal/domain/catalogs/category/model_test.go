package category

import (
	"context"
	"strings"
	"testing"
)

func TestCategory_Validate(t *testing.T) {
	ctx := context.Background()

	longDesc := strings.Repeat("d", 201)
	okDesc := "Dry goods and cereals"

	tests := []struct {
		name    string
		cat     *Category
		wantErr bool
	}{
		{"valid", New("Dry goods"), false},
		{"valid with description", &Category{Catalog: New("Dairy").Catalog, Description: &okDesc}, false},
		{"empty name", New("   "), true},
		{"name too long", New(strings.Repeat("x", 101)), true},
		{"description too long", &Category{Catalog: New("Dairy").Catalog, Description: &longDesc}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate(ctx)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
