package supplier

import (
	"context"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/tx"
	"larder/internal/domain"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// checkNameUnique rejects a second supplier with the same name.
func (s *Service) checkNameUnique(ctx context.Context, sup *Supplier) error {
	exists, err := s.repo.ExistsByKey(ctx, sup.Name, sup.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("supplier", "name", sup.Name)
	}
	return nil
}

// Deactivate soft-deletes the supplier. Historical movements and product
// references stay intact.
func (s *Service) Deactivate(ctx context.Context, supplierID id.ID) error {
	return s.SetActive(ctx, supplierID, false)
}

// Reactivate restores a soft-deleted supplier.
func (s *Service) Reactivate(ctx context.Context, supplierID id.ID) error {
	return s.SetActive(ctx, supplierID, true)
}

// ProductCount returns how many products reference the supplier.
func (s *Service) ProductCount(ctx context.Context, supplierID id.ID) (int64, error) {
	exists, err := s.repo.Exists(ctx, supplierID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperror.NewNotFound("supplier", supplierID.String())
	}
	return s.repo.CountProducts(ctx, supplierID)
}
