package category

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
	categories    map[id.ID]*Category
	productCounts map[id.ID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories:    make(map[id.ID]*Category),
		productCounts: make(map[id.ID]int64),
	}
}

func (f *fakeRepo) Create(ctx context.Context, c *Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	c, ok := f.categories[categoryID]
	if !ok {
		return nil, apperror.NewNotFound("category", categoryID.String())
	}
	return c, nil
}

func (f *fakeRepo) GetByKey(ctx context.Context, key string) (*Category, error) {
	for _, c := range f.categories {
		if c.Name == key {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("category", key)
}

func (f *fakeRepo) Update(ctx context.Context, c *Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, categoryID id.ID) error {
	delete(f.categories, categoryID)
	return nil
}

func (f *fakeRepo) SetActive(ctx context.Context, categoryID id.ID, active bool) error {
	c, ok := f.categories[categoryID]
	if !ok {
		return apperror.NewNotFound("category", categoryID.String())
	}
	c.Active = active
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	var items []*Category
	for _, c := range f.categories {
		items = append(items, c)
	}
	return domain.ListResult[*Category]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	_, ok := f.categories[categoryID]
	return ok, nil
}

// ExistsByKey matches by name only; the active flag never frees a name.
func (f *fakeRepo) ExistsByKey(ctx context.Context, key string, excludeID id.ID) (bool, error) {
	for _, c := range f.categories {
		if c.Name == key && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountProducts(ctx context.Context, categoryID id.ID) (int64, error) {
	return f.productCounts[categoryID], nil
}

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestService_ProductCount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})
	ctx := context.Background()

	c := New("Beverages")
	require.NoError(t, svc.Create(ctx, c))
	repo.productCounts[c.ID] = 7

	count, err := svc.ProductCount(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, count)
}

func TestService_ProductCount_UnknownCategory(t *testing.T) {
	svc := NewService(newFakeRepo(), noopTxManager{})

	_, err := svc.ProductCount(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Create_DuplicateNameAfterDeactivation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, noopTxManager{})
	ctx := context.Background()

	first := New("Dairy")
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, repo.SetActive(ctx, first.ID, false))

	err := svc.Create(ctx, New("Dairy"))
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
}
