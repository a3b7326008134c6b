package product

import (
	"context"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/tx"
	"larder/internal/domain"
)

// RefChecker verifies that a referenced catalog record exists.
type RefChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories RefChecker
	suppliers  RefChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, categories, suppliers RefChecker) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
		suppliers:      suppliers,
	}

	base.Hooks().OnBeforeCreate(svc.prepare)
	base.Hooks().OnBeforeUpdate(svc.prepare)

	return svc
}

// prepare normalizes the SKU and checks uniqueness and references.
func (s *Service) prepare(ctx context.Context, p *Product) error {
	p.SKU = NormalizeSKU(p.SKU)

	exists, err := s.repo.ExistsByKey(ctx, p.SKU, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "sku", p.SKU)
	}

	if p.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *p.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewNotFound("category", p.CategoryID.String())
		}
	}

	if p.SupplierID != nil {
		ok, err := s.suppliers.Exists(ctx, *p.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewNotFound("supplier", p.SupplierID.String())
		}
	}

	return nil
}

// GetBySKU retrieves a product by its stock keeping unit code.
func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.GetByKey(ctx, NormalizeSKU(sku))
}

// Deactivate soft-deletes the product. Its ledger history stays intact
// and new movements against it are rejected.
func (s *Service) Deactivate(ctx context.Context, productID id.ID) error {
	return s.SetActive(ctx, productID, false)
}

// Reactivate restores a soft-deleted product.
func (s *Service) Reactivate(ctx context.Context, productID id.ID) error {
	return s.SetActive(ctx, productID, true)
}
