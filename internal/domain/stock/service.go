// Package stock implements stock movement accounting.
// Every quantity change goes through Engine.Apply, which writes the
// journal line and the cached product quantity in one transaction.
package stock

import (
	"context"

	"larder/internal/core/apperror"
	appctx "larder/internal/core/context"
	"larder/internal/core/id"
	"larder/internal/core/tx"
	"larder/internal/core/types"
	"larder/internal/domain"
	"larder/internal/domain/catalogs/product"
	"larder/internal/domain/ledger"
	"larder/pkg/logger"
)

// ProductStore is the slice of product persistence the engine needs.
type ProductStore interface {
	// GetForUpdate locks the product row for the transaction.
	GetForUpdate(ctx context.Context, id id.ID) (*product.Product, error)

	// UpdateQuantity writes the cached quantity.
	UpdateQuantity(ctx context.Context, id id.ID, quantity types.Quantity) error
}

// MovementStore is the slice of ledger persistence the engine needs.
type MovementStore interface {
	Create(ctx context.Context, m *ledger.Movement) error
	GetByID(ctx context.Context, id id.ID) (*ledger.Movement, error)
	List(ctx context.Context, f ledger.ListFilter) (domain.ListResult[*ledger.Movement], error)
	SumForProduct(ctx context.Context, productID id.ID) (types.Quantity, error)
}

// Request describes one stock movement to apply.
type Request struct {
	ProductID id.ID
	Type      ledger.MovementType
	Quantity  types.Quantity
	Reason    string
	Notes     *string

	// Actor overrides the authenticated user; empty means take it
	// from context.
	Actor string
}

// Result is the outcome of an applied movement.
type Result struct {
	Movement *ledger.Movement
	Product  *product.Product
}

// Config tunes the engine.
type Config struct {
	// QuantityScale is the maximum number of decimal places a quantity
	// may carry.
	QuantityScale int32

	// TxRetries is how many attempts are made when the transaction
	// fails with a retryable error (serialization, deadlock).
	TxRetries int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		QuantityScale: types.DefaultQuantityScale,
		TxRetries:     3,
	}
}

// Recorder receives each applied movement inside the apply transaction.
// Used for audit trails; a failing recorder rolls the movement back.
type Recorder interface {
	RecordMovement(ctx context.Context, m *ledger.Movement) error
}

// Engine applies stock movements atomically.
type Engine struct {
	products  ProductStore
	movements MovementStore
	txManager tx.Manager
	recorder  Recorder
	cfg       Config
}

// NewEngine creates a stock accounting engine.
func NewEngine(products ProductStore, movements MovementStore, txManager tx.Manager, cfg Config) *Engine {
	if cfg.TxRetries < 1 {
		cfg.TxRetries = 1
	}
	if cfg.QuantityScale <= 0 {
		cfg.QuantityScale = types.DefaultQuantityScale
	}
	return &Engine{
		products:  products,
		movements: movements,
		txManager: txManager,
		cfg:       cfg,
	}
}

// SetRecorder attaches an audit recorder. Optional.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// Apply validates and applies one stock movement.
// On any error nothing is written: no journal line, no quantity change.
//
// Concurrent movements against the same product serialize on the row lock
// taken by GetForUpdate, so two exits can never both pass the availability
// check against the same starting quantity.
func (e *Engine) Apply(ctx context.Context, req Request) (*Result, error) {
	m := ledger.New(req.ProductID, req.Type, req.Quantity, req.Reason)
	m.Notes = req.Notes
	m.Actor = e.resolveActor(ctx, req.Actor)

	if err := m.Validate(ctx); err != nil {
		return nil, err
	}
	if !types.IsValidQuantity(m.Quantity, e.cfg.QuantityScale) {
		return nil, apperror.NewInvalidQuantity("quantity must be positive").
			WithDetail("quantity", m.Quantity.String()).
			WithDetail("max_scale", e.cfg.QuantityScale)
	}

	var res *Result
	var err error
	for attempt := 1; attempt <= e.cfg.TxRetries; attempt++ {
		res, err = e.applyOnce(ctx, m)
		if err == nil || !apperror.IsRetryableTx(err) {
			return res, err
		}
		logger.Warn(ctx, "retrying stock movement after transaction conflict",
			"product_id", m.ProductID.String(),
			"attempt", attempt,
			"error", err)
	}
	return nil, err
}

func (e *Engine) applyOnce(ctx context.Context, m *ledger.Movement) (*Result, error) {
	var res Result
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := e.products.GetForUpdate(ctx, m.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", m.ProductID.String())
			}
			return err
		}

		if !p.Active {
			return apperror.NewInactiveProduct(p.ID.String())
		}

		if m.Type == ledger.TypeExit && m.Quantity.GreaterThan(p.CurrentQuantity) {
			return apperror.NewInsufficientStock(
				p.ID.String(),
				m.Quantity.String(),
				p.CurrentQuantity.String(),
			)
		}

		newQty := p.CurrentQuantity.Add(m.Delta())

		if err := e.movements.Create(ctx, m); err != nil {
			return err
		}
		if err := e.products.UpdateQuantity(ctx, p.ID, newQty); err != nil {
			return err
		}
		if e.recorder != nil {
			if err := e.recorder.RecordMovement(ctx, m); err != nil {
				return err
			}
		}

		p.CurrentQuantity = newQty
		res = Result{Movement: m, Product: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock movement applied",
		"movement_id", res.Movement.ID.String(),
		"product_id", res.Product.ID.String(),
		"type", string(res.Movement.Type),
		"quantity", res.Movement.Quantity.String(),
		"new_quantity", res.Product.CurrentQuantity.String(),
		"state", string(res.Product.State()))
	return &res, nil
}

func (e *Engine) resolveActor(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	if user := appctx.GetUser(ctx); user != nil {
		if user.Name != "" {
			return user.Name
		}
		return user.Email
	}
	return ledger.DefaultActor
}

// Recompute rebuilds a product's cached quantity from the journal.
// Returns the recomputed quantity. Useful as a consistency check after
// manual data fixes.
func (e *Engine) Recompute(ctx context.Context, productID id.ID) (types.Quantity, error) {
	var sum types.Quantity
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := e.products.GetForUpdate(ctx, productID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", productID.String())
			}
			return err
		}

		sum, err = e.movements.SumForProduct(ctx, productID)
		if err != nil {
			return err
		}

		if p.CurrentQuantity.Equal(sum) {
			return nil
		}

		logger.Warn(ctx, "cached quantity drifted from ledger",
			"product_id", productID.String(),
			"cached", p.CurrentQuantity.String(),
			"ledger", sum.String())
		return e.products.UpdateQuantity(ctx, productID, sum)
	})
	if err != nil {
		return types.Zero(), err
	}
	return sum, nil
}

// GetMovement retrieves a single journal line.
func (e *Engine) GetMovement(ctx context.Context, movementID id.ID) (*ledger.Movement, error) {
	m, err := e.movements.GetByID(ctx, movementID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, err
	}
	return m, nil
}

// ListMovements queries the journal, newest first.
func (e *Engine) ListMovements(ctx context.Context, f ledger.ListFilter) (domain.ListResult[*ledger.Movement], error) {
	if f.Limit <= 0 {
		f.Limit = ledger.DefaultListFilter().Limit
	}
	return e.movements.List(ctx, f)
}

// ProductMovements returns the journal for one product, newest first.
func (e *Engine) ProductMovements(ctx context.Context, productID id.ID, limit, offset int) (domain.ListResult[*ledger.Movement], error) {
	f := ledger.DefaultListFilter()
	f.ProductID = &productID
	if limit > 0 {
		f.Limit = limit
	}
	f.Offset = offset
	return e.movements.List(ctx, f)
}
