package category

import (
	"context"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/tx"
	"larder/internal/domain"
)

// Service provides business logic for the Category catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// checkNameUnique rejects a second category with the same name.
func (s *Service) checkNameUnique(ctx context.Context, c *Category) error {
	exists, err := s.repo.ExistsByKey(ctx, c.Name, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("category", "name", c.Name)
	}
	return nil
}

// ProductCount returns how many products reference the category.
func (s *Service) ProductCount(ctx context.Context, categoryID id.ID) (int64, error) {
	exists, err := s.repo.Exists(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperror.NewNotFound("category", categoryID.String())
	}
	return s.repo.CountProducts(ctx, categoryID)
}
