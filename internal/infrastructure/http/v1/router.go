// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"larder/internal/domain/auth"
	"larder/internal/domain/catalogs/category"
	"larder/internal/domain/catalogs/product"
	"larder/internal/domain/catalogs/supplier"
	"larder/internal/domain/ledger"
	"larder/internal/domain/reports"
	"larder/internal/domain/stock"
	"larder/internal/infrastructure/http/v1/handlers"
	"larder/internal/infrastructure/http/v1/middleware"
	"larder/internal/infrastructure/storage/postgres"
	"larder/internal/infrastructure/storage/postgres/catalog_repo"
	"larder/internal/infrastructure/storage/postgres/ledger_repo"
	"larder/internal/infrastructure/storage/postgres/report_repo"
	"larder/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives all repository transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Audit records catalog changes; nil disables auditing
	Audit *postgres.AuditService

	// Stock tunes the movement engine
	Stock stock.Config

	// DashboardRecentLimit caps recent movements on the dashboard
	DashboardRecentLimit int
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// Repositories and services are created once; the TxManager picks up
	// the active transaction from context per request.
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	movementRepo := ledger_repo.NewMovementRepo(cfg.TxManager)
	dashboardRepo := report_repo.NewDashboardRepo(cfg.TxManager)

	categoryService := category.NewService(categoryRepo, cfg.TxManager)
	supplierService := supplier.NewService(supplierRepo, cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, categoryRepo, supplierRepo)
	engine := stock.NewEngine(productRepo, movementRepo, cfg.TxManager, cfg.Stock)
	reportService := reports.NewService(dashboardRepo, cfg.DashboardRecentLimit)

	registerAuditHooks(cfg.Audit, categoryService, supplierService, productService)
	if cfg.Audit != nil {
		engine.SetRecorder(movementAuditRecorder{audit: cfg.Audit})
	}

	// API v1
	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, baseHandler, cfg)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		// --- CATEGORIES ---
		{
			handler := handlers.NewCategoryHandler(baseHandler, categoryService)
			g := protected.Group("/categories")
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.POST("", handler.Create)
			g.PUT("/:id", handler.Update)
			g.DELETE("/:id", handler.Delete)
		}

		// --- SUPPLIERS ---
		{
			handler := handlers.NewSupplierHandler(baseHandler, supplierService)
			g := protected.Group("/suppliers")
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.POST("", handler.Create)
			g.PUT("/:id", handler.Update)
			g.DELETE("/:id", handler.Delete)
			g.POST("/:id/activate", handler.Activate)
		}

		// --- PRODUCTS ---
		{
			handler := handlers.NewProductHandler(baseHandler, productService)
			stockHandler := handlers.NewStockHandler(baseHandler, engine)
			g := protected.Group("/products")
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.GET("/sku/:sku", handler.GetBySKU)
			g.POST("", handler.Create)
			g.PUT("/:id", handler.Update)
			g.DELETE("/:id", handler.Delete)
			g.POST("/:id/activate", handler.Activate)
			g.POST("/:id/recompute", middleware.RequireAdmin(), stockHandler.Recompute)
		}

		// --- MOVEMENTS ---
		{
			handler := handlers.NewStockHandler(baseHandler, engine)
			g := protected.Group("/movements")
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.GET("/product/:id", handler.ProductHistory)
			g.POST("", handler.Apply)
		}

		// --- REPORTS ---
		{
			handler := handlers.NewReportsHandler(baseHandler, reportService)
			g := protected.Group("/reports")
			g.GET("/dashboard", handler.Dashboard)
		}
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.GET("/me", authHandler.Me)
	protected.POST("/register", middleware.RequireAdmin(), authHandler.Register)
}

// movementAuditRecorder writes an audit entry for each movement inside
// the apply transaction.
type movementAuditRecorder struct {
	audit *postgres.AuditService
}

func (r movementAuditRecorder) RecordMovement(ctx context.Context, m *ledger.Movement) error {
	return r.audit.LogChange(ctx, "movement", m.ID, postgres.AuditActionCreate, map[string]any{
		"product_id": m.ProductID.String(),
		"type":       string(m.Type),
		"quantity":   m.Quantity.String(),
		"reason":     m.Reason,
	})
}

// registerAuditHooks attaches audit logging to catalog mutations.
func registerAuditHooks(
	audit *postgres.AuditService,
	categories *category.Service,
	suppliers *supplier.Service,
	products *product.Service,
) {
	if audit == nil {
		return
	}

	categories.Hooks().OnAfterCreate(func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionCreate, map[string]any{"name": c.Name})
	})
	categories.Hooks().OnAfterUpdate(func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionUpdate, map[string]any{"name": c.Name})
	})
	categories.Hooks().OnAfterDelete(func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionDelete, map[string]any{"name": c.Name})
	})

	suppliers.Hooks().OnAfterCreate(func(ctx context.Context, s *supplier.Supplier) error {
		return audit.LogChange(ctx, "supplier", s.ID, postgres.AuditActionCreate, map[string]any{"name": s.Name})
	})
	suppliers.Hooks().OnAfterUpdate(func(ctx context.Context, s *supplier.Supplier) error {
		return audit.LogChange(ctx, "supplier", s.ID, postgres.AuditActionUpdate, map[string]any{"name": s.Name})
	})
	suppliers.Hooks().OnAfterDelete(func(ctx context.Context, s *supplier.Supplier) error {
		return audit.LogChange(ctx, "supplier", s.ID, postgres.AuditActionDeactivate, map[string]any{"name": s.Name})
	})

	products.Hooks().OnAfterCreate(func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionCreate, map[string]any{"name": p.Name, "sku": p.SKU})
	})
	products.Hooks().OnAfterUpdate(func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, map[string]any{"name": p.Name, "sku": p.SKU})
	})
	products.Hooks().OnAfterDelete(func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionDeactivate, map[string]any{"name": p.Name, "sku": p.SKU})
	})
}
