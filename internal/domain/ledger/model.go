// Package ledger provides the immutable stock movement journal.
// Movements are append-only; corrections are made with compensating
// movements, never by editing history.
package ledger

import (
	"context"
	"strings"
	"time"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/types"
)

const (
	maxReasonLen = 200
	maxActorLen  = 100

	// DefaultActor is recorded when no authenticated user is attached
	// to the request context.
	DefaultActor = "system"
)

// MovementType discriminates stock entries from stock exits.
type MovementType string

const (
	TypeEntry MovementType = "entry"
	TypeExit  MovementType = "exit"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	return t == TypeEntry || t == TypeExit
}

// Movement is one immutable line of the stock journal.
type Movement struct {
	// ID is the primary key (UUIDv7, time-ordered)
	ID id.ID `db:"id" json:"id"`

	// ProductID references the moved product
	ProductID id.ID `db:"product_id" json:"productId"`

	// Type is entry or exit
	Type MovementType `db:"type" json:"type"`

	// Quantity is always positive; Type carries the direction
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Reason is a short required explanation (purchase, spoilage, sale)
	Reason string `db:"reason" json:"reason"`

	// Notes is an optional free-form comment
	Notes *string `db:"notes" json:"notes,omitempty"`

	// Actor is who recorded the movement
	Actor string `db:"actor" json:"actor"`

	// CreatedAt is when the movement was recorded (UTC)
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Movement with generated ID and timestamp.
func New(productID id.ID, mType MovementType, quantity types.Quantity, reason string) *Movement {
	return &Movement{
		ID:        id.New(),
		ProductID: productID,
		Type:      mType,
		Quantity:  quantity,
		Reason:    strings.TrimSpace(reason),
		Actor:     DefaultActor,
		CreatedAt: time.Now().UTC(),
	}
}

// Delta returns the signed quantity change this movement applies to stock.
func (m *Movement) Delta() types.Quantity {
	if m.Type == TypeExit {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Validate checks movement invariants. Quantity positivity and scale are
// checked by the stock engine against the configured scale; this covers
// the structural fields.
func (m *Movement) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if !m.Type.IsValid() {
		return apperror.NewValidation("movement type must be entry or exit").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}

	if strings.TrimSpace(m.Reason) == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	if len(m.Reason) > maxReasonLen {
		return apperror.NewValidation("reason is too long").
			WithDetail("field", "reason").
			WithDetail("max_length", maxReasonLen)
	}

	if len(m.Actor) > maxActorLen {
		return apperror.NewValidation("actor is too long").
			WithDetail("field", "actor").
			WithDetail("max_length", maxActorLen)
	}

	return nil
}
