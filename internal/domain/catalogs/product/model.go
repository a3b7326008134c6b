// Package product provides the product catalog and stock classification.
// A product carries a cached current quantity; the movement ledger is the
// source of truth and the cache is updated in the same transaction.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"larder/internal/core/apperror"
	"larder/internal/core/entity"
	"larder/internal/core/id"
	"larder/internal/core/types"
)

const (
	maxNameLen = 150
	maxSKULen  = 50
	maxUnitLen = 20
)

// StockState classifies a product's stock level.
type StockState string

const (
	// StateCritical means the product is out of stock.
	StateCritical StockState = "critical"

	// StateLow means the quantity is at or below the minimum threshold.
	StateLow StockState = "low"

	// StateNormal means the quantity is above the minimum threshold.
	StateNormal StockState = "normal"
)

// Classify returns the stock state for a quantity against a minimum.
// Zero (or negative) stock is always critical, even when the minimum is zero.
func Classify(current, minimum decimal.Decimal) StockState {
	if current.Sign() <= 0 {
		return StateCritical
	}
	if current.LessThanOrEqual(minimum) {
		return StateLow
	}
	return StateNormal
}

// Product represents a stocked item.
type Product struct {
	entity.Catalog

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// SKU is the unique stock keeping unit code, stored uppercase
	SKU string `db:"sku" json:"sku"`

	// CurrentQuantity is the cached on-hand quantity.
	// It equals the sum of ledger movements at all times.
	CurrentQuantity types.Quantity `db:"current_quantity" json:"currentQuantity"`

	// Unit is the unit of measure (kg, l, pcs)
	Unit string `db:"unit" json:"unit"`

	// MinStock is the threshold below which stock is considered low
	MinStock types.Quantity `db:"min_stock" json:"minStock"`

	// UnitPrice is the purchase price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// CategoryID is an optional category reference
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// SupplierID is an optional supplier reference
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`
}

// New creates a Product with required fields. Quantity starts at zero;
// initial stock enters through the ledger as an entry movement.
func New(name, sku, unit string) *Product {
	return &Product{
		Catalog:         entity.NewCatalog(name),
		SKU:             NormalizeSKU(sku),
		Unit:            strings.TrimSpace(unit),
		CurrentQuantity: decimal.Zero,
		MinStock:        decimal.Zero,
		UnitPrice:       decimal.Zero,
	}
}

// NormalizeSKU trims and uppercases a SKU so lookups are case-insensitive.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// State returns the product's current stock classification.
func (p *Product) State() StockState {
	return Classify(p.CurrentQuantity, p.MinStock)
}

// StockValue returns quantity times unit price.
func (p *Product) StockValue() types.Money {
	return p.CurrentQuantity.Mul(p.UnitPrice)
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if len(p.Name) > maxNameLen {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max_length", maxNameLen)
	}

	if strings.TrimSpace(p.SKU) == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if len(p.SKU) > maxSKULen {
		return apperror.NewValidation("sku is too long").
			WithDetail("field", "sku").
			WithDetail("max_length", maxSKULen)
	}

	if strings.TrimSpace(p.Unit) == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if len(p.Unit) > maxUnitLen {
		return apperror.NewValidation("unit is too long").
			WithDetail("field", "unit").
			WithDetail("max_length", maxUnitLen)
	}

	if p.CurrentQuantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "currentQuantity")
	}

	if p.MinStock.IsNegative() {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}

	if !types.IsValidPrice(p.UnitPrice) {
		return apperror.NewValidation("unit price must be positive with at most two decimal places").
			WithDetail("field", "unitPrice").
			WithDetail("value", p.UnitPrice.String())
	}

	return nil
}
