package product

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"larder/internal/core/apperror"
	"larder/internal/core/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		current string
		minimum string
		want    StockState
	}{
		{"zero stock is critical", "0", "5", StateCritical},
		{"zero stock with zero minimum is critical", "0", "0", StateCritical},
		{"at minimum is low", "5", "5", StateLow},
		{"below minimum is low", "3", "5", StateLow},
		{"fractional below minimum is low", "4.99", "5", StateLow},
		{"just above minimum is normal", "5.01", "5", StateNormal},
		{"above minimum is normal", "10", "5", StateNormal},
		{"positive stock with zero minimum is normal", "0.01", "0", StateNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(types.Must(tt.current), types.Must(tt.minimum))
			if got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.current, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestProduct_State(t *testing.T) {
	p := New("Tomatoes", "veg-001", "kg")
	if p.SKU != "VEG-001" {
		t.Errorf("expected normalized SKU VEG-001, got %s", p.SKU)
	}
	if p.State() != StateCritical {
		t.Errorf("new product must start critical, got %s", p.State())
	}

	p.CurrentQuantity = types.Must("12")
	p.MinStock = types.Must("5")
	if p.State() != StateNormal {
		t.Errorf("expected normal, got %s", p.State())
	}
}

func TestProduct_StockValue(t *testing.T) {
	p := New("Olive oil", "OIL-01", "l")
	p.CurrentQuantity = types.Must("2.5")
	p.UnitPrice = types.Must("10.40")

	want := types.Must("26.00")
	if !p.StockValue().Equal(want) {
		t.Errorf("StockValue() = %s, want %s", p.StockValue(), want)
	}
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Product {
		p := New("Flour", "DRY-001", "kg")
		p.UnitPrice = types.Must("1.20")
		return p
	}

	tests := []struct {
		name     string
		mutate   func(p *Product)
		wantCode string
	}{
		{"valid product", func(p *Product) {}, ""},
		{"empty name", func(p *Product) { p.Name = "  " }, apperror.CodeValidation},
		{"name too long", func(p *Product) { p.Name = strings.Repeat("x", 151) }, apperror.CodeValidation},
		{"empty sku", func(p *Product) { p.SKU = "" }, apperror.CodeValidation},
		{"sku too long", func(p *Product) { p.SKU = strings.Repeat("A", 51) }, apperror.CodeValidation},
		{"empty unit", func(p *Product) { p.Unit = "" }, apperror.CodeValidation},
		{"negative quantity", func(p *Product) { p.CurrentQuantity = types.Must("-1") }, apperror.CodeValidation},
		{"negative min stock", func(p *Product) { p.MinStock = types.Must("-0.5") }, apperror.CodeValidation},
		{"negative price", func(p *Product) { p.UnitPrice = types.Must("-2") }, apperror.CodeValidation},
		{"price with three decimals", func(p *Product) { p.UnitPrice = types.Must("1.999") }, apperror.CodeValidation},
		{"zero price", func(p *Product) { p.UnitPrice = decimal.Zero }, apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate(ctx)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperror.HasCode(err, tt.wantCode) {
				t.Fatalf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}
