package dto

import (
	"time"

	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
// Decimal fields accept both JSON numbers and strings; quantity starts
// at zero and is changed only through movements.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	SKU         string          `json:"sku" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	MinStock    *types.Quantity `json:"minStock"`
	UnitPrice   *types.Money    `json:"unitPrice" binding:"required"`
	CategoryID  *id.ID          `json:"categoryId"`
	SupplierID  *id.ID          `json:"supplierId"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, r.SKU, r.Unit)
	p.Description = r.Description
	if r.MinStock != nil {
		p.MinStock = *r.MinStock
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	p.CategoryID = r.CategoryID
	p.SupplierID = r.SupplierID
	return p
}

// UpdateProductRequest is the request body for updating a product.
// CurrentQuantity is deliberately absent: stock changes go through
// the movements endpoint only.
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	SKU         string          `json:"sku" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	MinStock    *types.Quantity `json:"minStock"`
	UnitPrice   *types.Money    `json:"unitPrice"`
	CategoryID  *id.ID          `json:"categoryId"`
	SupplierID  *id.ID          `json:"supplierId"`
	Version     int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.SKU = product.NormalizeSKU(r.SKU)
	p.Unit = r.Unit
	if r.MinStock != nil {
		p.MinStock = *r.MinStock
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	p.CategoryID = r.CategoryID
	p.SupplierID = r.SupplierID
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	SKU             string             `json:"sku"`
	Unit            string             `json:"unit"`
	CurrentQuantity types.Quantity     `json:"currentQuantity"`
	MinStock        types.Quantity     `json:"minStock"`
	UnitPrice       types.Money        `json:"unitPrice"`
	StockValue      types.Money        `json:"stockValue"`
	State           product.StockState `json:"state"`
	CategoryID      *string            `json:"categoryId,omitempty"`
	SupplierID      *string            `json:"supplierId,omitempty"`
	Active          bool               `json:"active"`
	Version         int                `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Unit:            p.Unit,
		CurrentQuantity: p.CurrentQuantity,
		MinStock:        p.MinStock,
		UnitPrice:       p.UnitPrice,
		StockValue:      p.StockValue(),
		State:           p.State(),
		Active:          p.Active,
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
	}
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		resp.CategoryID = &s
	}
	if p.SupplierID != nil {
		s := p.SupplierID.String()
		resp.SupplierID = &s
	}
	return resp
}
