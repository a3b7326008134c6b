package dto

import (
	"time"

	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain/ledger"
	"larder/internal/domain/stock"
)

// --- Request DTOs ---

// CreateMovementRequest is the request body for recording a stock movement.
type CreateMovementRequest struct {
	ProductID id.ID               `json:"productId" binding:"required"`
	Type      ledger.MovementType `json:"type" binding:"required"`
	Quantity  types.Quantity      `json:"quantity" binding:"required"`
	Reason    string              `json:"reason" binding:"required"`
	Notes     *string             `json:"notes"`
}

// ToRequest converts DTO to a stock engine request.
func (r *CreateMovementRequest) ToRequest() stock.Request {
	return stock.Request{
		ProductID: r.ProductID,
		Type:      r.Type,
		Quantity:  r.Quantity,
		Reason:    r.Reason,
		Notes:     r.Notes,
	}
}

// --- Response DTOs ---

// MovementResponse is the response body for a ledger movement.
type MovementResponse struct {
	ID        string              `json:"id"`
	ProductID string              `json:"productId"`
	Type      ledger.MovementType `json:"type"`
	Quantity  types.Quantity      `json:"quantity"`
	Reason    string              `json:"reason"`
	Notes     *string             `json:"notes,omitempty"`
	Actor     string              `json:"actor"`
	CreatedAt time.Time           `json:"createdAt"`
}

// FromMovement creates response DTO from domain entity.
func FromMovement(m *ledger.Movement) *MovementResponse {
	return &MovementResponse{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Notes:     m.Notes,
		Actor:     m.Actor,
		CreatedAt: m.CreatedAt,
	}
}

// FromMovements maps a slice of movements.
func FromMovements(movements []*ledger.Movement) []*MovementResponse {
	out := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = FromMovement(m)
	}
	return out
}

// MovementApplyResponse is the response after a movement is applied.
// Returns both the recorded movement and the updated product state.
type MovementApplyResponse struct {
	Movement *MovementResponse `json:"movement"`
	Product  *ProductResponse  `json:"product"`
}

// RecomputeResponse is the response for a stock recompute.
type RecomputeResponse struct {
	ProductID string         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
}
