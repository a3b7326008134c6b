package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/domain/ledger"
	"larder/internal/domain/stock"
	"larder/internal/infrastructure/http/v1/dto"
)

// StockHandler exposes the movement ledger and the stock engine.
type StockHandler struct {
	*BaseHandler
	engine *stock.Engine
}

// NewStockHandler creates a stock handler.
func NewStockHandler(base *BaseHandler, engine *stock.Engine) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		engine:      engine,
	}
}

// Apply handles POST /movements - record a stock movement.
// Validation, the insufficient stock check and the quantity cache update
// all happen inside one transaction in the engine.
func (h *StockHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.engine.Apply(ctx, req.ToRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MovementApplyResponse{
		Movement: dto.FromMovement(result.Movement),
		Product:  dto.FromProduct(result.Product),
	})
}

// List handles GET /movements - list movements with filters.
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ledger.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	if productStr := c.Query("productId"); productStr != "" {
		productID, err := id.Parse(productStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &productID
	}

	if typeStr := c.Query("type"); typeStr != "" {
		mType := ledger.MovementType(typeStr)
		if !mType.IsValid() {
			h.Error(c, apperror.NewValidation("movement type must be entry or exit"))
			return
		}
		filter.Type = &mType
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date (RFC3339 expected)"))
			return
		}
		filter.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date (RFC3339 expected)"))
			return
		}
		filter.To = &to
	}

	result, err := h.engine.ListMovements(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromMovements(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /movements/:id - get single movement.
func (h *StockHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	m, err := h.engine.GetMovement(ctx, movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovement(m))
}

// ProductHistory handles GET /movements/product/:id - movement history for a product.
func (h *StockHandler) ProductHistory(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 10)
	offset := h.ParseIntQuery(c, "offset", 0)

	result, err := h.engine.ProductMovements(ctx, productID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromMovements(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Recompute handles POST /products/:id/recompute - rebuild the cached
// quantity from the ledger.
func (h *StockHandler) Recompute(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	qty, err := h.engine.Recompute(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecomputeResponse{
		ProductID: productID.String(),
		Quantity:  qty,
	})
}
