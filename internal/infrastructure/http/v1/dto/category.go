package dto

import (
	"time"

	"larder/internal/domain/catalogs/category"
)

// --- Request DTOs ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	c := category.New(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Description = r.Description
	c.Version = r.Version
}

// --- Response DTOs ---

// CategoryResponse is the response body for a category.
// ProductCount is filled on single-entity reads only.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Active       bool      `json:"active"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount *int64    `json:"productCount,omitempty"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
	}
}

// WithProductCount attaches the number of products using the category.
func (r *CategoryResponse) WithProductCount(n int64) *CategoryResponse {
	r.ProductCount = &n
	return r
}
