package supplier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/domain"
)

type fakeRepo struct {
	suppliers     map[id.ID]*Supplier
	productCounts map[id.ID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		suppliers:     make(map[id.ID]*Supplier),
		productCounts: make(map[id.ID]int64),
	}
}

func (f *fakeRepo) Create(ctx context.Context, s *Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	s, ok := f.suppliers[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("supplier", supplierID.String())
	}
	return s, nil
}

func (f *fakeRepo) GetByKey(ctx context.Context, key string) (*Supplier, error) {
	for _, s := range f.suppliers {
		if s.Name == key {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("supplier", key)
}

func (f *fakeRepo) Update(ctx context.Context, s *Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

// Delete is a soft delete, matching the real repository.
func (f *fakeRepo) Delete(ctx context.Context, supplierID id.ID) error {
	return f.SetActive(ctx, supplierID, false)
}

func (f *fakeRepo) SetActive(ctx context.Context, supplierID id.ID, active bool) error {
	s, ok := f.suppliers[supplierID]
	if !ok {
		return apperror.NewNotFound("supplier", supplierID.String())
	}
	s.Active = active
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error) {
	var items []*Supplier
	for _, s := range f.suppliers {
		items = append(items, s)
	}
	return domain.ListResult[*Supplier]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, supplierID id.ID) (bool, error) {
	_, ok := f.suppliers[supplierID]
	return ok, nil
}

// ExistsByKey matches by name only; the active flag never frees a name.
func (f *fakeRepo) ExistsByKey(ctx context.Context, key string, excludeID id.ID) (bool, error) {
	for _, s := range f.suppliers {
		if s.Name == key && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountProducts(ctx context.Context, supplierID id.ID) (int64, error) {
	return f.productCounts[supplierID], nil
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Name uniqueness is independent of the active flag: soft-deleting "Acme"
// must not free the name for a new supplier.
func TestService_Create_DuplicateNameAfterSoftDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})
	ctx := context.Background()

	first := New("Acme")
	require.NoError(t, svc.Create(ctx, first))

	err := svc.Create(ctx, New("Acme"))
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))

	require.NoError(t, svc.Deactivate(ctx, first.ID))

	err = svc.Create(ctx, New("Acme"))
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
}

func TestService_Reactivate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})
	ctx := context.Background()

	s := New("Acme")
	require.NoError(t, svc.Create(ctx, s))
	require.NoError(t, svc.Deactivate(ctx, s.ID))
	assert.False(t, repo.suppliers[s.ID].Active)

	require.NoError(t, svc.Reactivate(ctx, s.ID))
	assert.True(t, repo.suppliers[s.ID].Active)
}

func TestService_ProductCount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})
	ctx := context.Background()

	s := New("Acme")
	require.NoError(t, svc.Create(ctx, s))
	repo.productCounts[s.ID] = 3

	count, err := svc.ProductCount(ctx, s.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	_, err = svc.ProductCount(ctx, id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
