package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/core/apperror"
	"larder/internal/core/id"
	"larder/internal/core/types"
	"larder/internal/domain"
	"larder/internal/domain/catalogs/product"
	"larder/internal/domain/ledger"
)

// --- In-memory store with transactional semantics ---
//
// A single mutex held for the whole transaction stands in for the row
// lock; writes are staged and only visible after commit.

type txKey struct{}

type memTx struct {
	stagedMovs []*ledger.Movement
	stagedQty  map[id.ID]types.Quantity
}

type memStore struct {
	mu        sync.Mutex
	products  map[id.ID]*product.Product
	movements []*ledger.Movement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[id.ID]*product.Product)}
}

func (s *memStore) addProduct(p *product.Product) {
	s.products[p.ID] = p
}

func txFrom(ctx context.Context) *memTx {
	t, _ := ctx.Value(txKey{}).(*memTx)
	return t
}

func (s *memStore) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	cp := *p
	if t := txFrom(ctx); t != nil {
		if q, ok := t.stagedQty[productID]; ok {
			cp.CurrentQuantity = q
		}
	}
	return &cp, nil
}

func (s *memStore) UpdateQuantity(ctx context.Context, productID id.ID, quantity types.Quantity) error {
	t := txFrom(ctx)
	if t == nil {
		s.products[productID].CurrentQuantity = quantity
		return nil
	}
	t.stagedQty[productID] = quantity
	return nil
}

func (s *memStore) Create(ctx context.Context, m *ledger.Movement) error {
	t := txFrom(ctx)
	if t == nil {
		s.movements = append(s.movements, m)
		return nil
	}
	t.stagedMovs = append(t.stagedMovs, m)
	return nil
}

func (s *memStore) GetByID(ctx context.Context, movementID id.ID) (*ledger.Movement, error) {
	for _, m := range s.movements {
		if m.ID == movementID {
			return m, nil
		}
	}
	return nil, apperror.NewNotFound("movement", movementID.String())
}

func (s *memStore) List(ctx context.Context, f ledger.ListFilter) (domain.ListResult[*ledger.Movement], error) {
	var items []*ledger.Movement
	for i := len(s.movements) - 1; i >= 0; i-- {
		m := s.movements[i]
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.Type != nil && m.Type != *f.Type {
			continue
		}
		items = append(items, m)
	}
	return domain.ListResult[*ledger.Movement]{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      f.Limit,
		Offset:     f.Offset,
	}, nil
}

func (s *memStore) SumForProduct(ctx context.Context, productID id.ID) (types.Quantity, error) {
	sum := types.Zero()
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Delta())
		}
	}
	if t := txFrom(ctx); t != nil {
		for _, m := range t.stagedMovs {
			if m.ProductID == productID {
				sum = sum.Add(m.Delta())
			}
		}
	}
	return sum, nil
}

type memTxManager struct {
	store *memStore
}

func (f *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	t := &memTx{stagedQty: make(map[id.ID]types.Quantity)}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	f.store.movements = append(f.store.movements, t.stagedMovs...)
	for pid, q := range t.stagedQty {
		f.store.products[pid].CurrentQuantity = q
	}
	return nil
}

// flakyTxManager fails the first n commits with a retryable error.
type flakyTxManager struct {
	inner    *memTxManager
	failures int
}

func (f *flakyTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.failures > 0 {
		f.failures--
		return apperror.NewTransactionFailure(nil).WithDetail("retryable", true)
	}
	return f.inner.RunInTransaction(ctx, fn)
}

// --- Helpers ---

func newTestProduct(qty string) *product.Product {
	p := product.New("Tomatoes", "VEG-001", "kg")
	p.CurrentQuantity = types.Must(qty)
	p.MinStock = types.Must("5")
	return p
}

func newTestEngine(store *memStore) *Engine {
	return NewEngine(store, store, &memTxManager{store: store}, DefaultConfig())
}

// --- Tests ---

func TestEngine_Apply_Entry(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)
	engine := newTestEngine(store)

	res, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("4.5"),
		Reason:    "weekly purchase",
	})
	require.NoError(t, err)

	assert.True(t, res.Product.CurrentQuantity.Equal(types.Must("14.5")))
	assert.Equal(t, ledger.TypeEntry, res.Movement.Type)
	assert.Equal(t, ledger.DefaultActor, res.Movement.Actor)
	require.Len(t, store.movements, 1)
	assert.True(t, store.products[p.ID].CurrentQuantity.Equal(types.Must("14.5")))
}

func TestEngine_Apply_Exit(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)
	engine := newTestEngine(store)

	res, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeExit,
		Quantity:  types.Must("10"),
		Reason:    "dinner service",
	})
	require.NoError(t, err)

	// Draining to exactly zero is allowed
	assert.True(t, res.Product.CurrentQuantity.IsZero())
	assert.Equal(t, product.StateCritical, res.Product.State())
}

func TestEngine_Apply_InsufficientStock(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("3")
	store.addProduct(p)
	engine := newTestEngine(store)

	_, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeExit,
		Quantity:  types.Must("3.01"),
		Reason:    "dinner service",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))

	// Nothing written: no journal line, quantity untouched
	assert.Empty(t, store.movements)
	assert.True(t, store.products[p.ID].CurrentQuantity.Equal(types.Must("3")))
}

func TestEngine_Apply_InvalidQuantity(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)
	engine := newTestEngine(store)

	for _, qty := range []string{"0", "-1", "1.999"} {
		_, err := engine.Apply(context.Background(), Request{
			ProductID: p.ID,
			Type:      ledger.TypeEntry,
			Quantity:  types.Must(qty),
			Reason:    "test",
		})
		require.Error(t, err, "quantity %s", qty)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidQuantity), "quantity %s", qty)
	}
	assert.Empty(t, store.movements)
}

func TestEngine_Apply_InactiveProduct(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	p.Deactivate()
	store.addProduct(p)
	engine := newTestEngine(store)

	_, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("1"),
		Reason:    "test",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInactiveProduct))
	assert.Empty(t, store.movements)
}

func TestEngine_Apply_UnknownProduct(t *testing.T) {
	store := newMemStore()
	engine := newTestEngine(store)

	_, err := engine.Apply(context.Background(), Request{
		ProductID: id.New(),
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("1"),
		Reason:    "test",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestEngine_Apply_MissingReason(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)
	engine := newTestEngine(store)

	_, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("1"),
		Reason:    "   ",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestEngine_Apply_ConcurrentExits(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)
	engine := newTestEngine(store)

	// Two exits of 7 against a stock of 10. The row lock serializes
	// them; exactly one may succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Apply(context.Background(), Request{
				ProductID: p.ID,
				Type:      ledger.TypeExit,
				Quantity:  types.Must("7"),
				Reason:    "dinner service",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.True(t, store.products[p.ID].CurrentQuantity.Equal(types.Must("3")))
	assert.Len(t, store.movements, 1)
}

func TestEngine_Apply_RetriesTransientFailure(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)

	txm := &flakyTxManager{inner: &memTxManager{store: store}, failures: 2}
	engine := NewEngine(store, store, txm, DefaultConfig())

	_, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("1"),
		Reason:    "test",
	})
	require.NoError(t, err)
	assert.Len(t, store.movements, 1)
}

func TestEngine_Apply_GivesUpAfterRetries(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("10")
	store.addProduct(p)

	txm := &flakyTxManager{inner: &memTxManager{store: store}, failures: 10}
	engine := NewEngine(store, store, txm, DefaultConfig())

	_, err := engine.Apply(context.Background(), Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("1"),
		Reason:    "test",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeTransaction))
	assert.Empty(t, store.movements)
}

func TestEngine_LedgerMatchesCachedQuantity(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("0")
	store.addProduct(p)
	engine := newTestEngine(store)
	ctx := context.Background()

	moves := []struct {
		mType ledger.MovementType
		qty   string
	}{
		{ledger.TypeEntry, "20"},
		{ledger.TypeExit, "4.25"},
		{ledger.TypeEntry, "1.75"},
		{ledger.TypeExit, "10"},
	}
	for _, mv := range moves {
		_, err := engine.Apply(ctx, Request{
			ProductID: p.ID,
			Type:      mv.mType,
			Quantity:  types.Must(mv.qty),
			Reason:    "test",
		})
		require.NoError(t, err)
	}

	// Replaying the journal must reproduce the cached quantity
	sum, err := store.SumForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(store.products[p.ID].CurrentQuantity))
	assert.True(t, sum.Equal(types.Must("7.5")))
}

func TestEngine_Recompute(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("0")
	store.addProduct(p)
	engine := newTestEngine(store)
	ctx := context.Background()

	_, err := engine.Apply(ctx, Request{
		ProductID: p.ID,
		Type:      ledger.TypeEntry,
		Quantity:  types.Must("8"),
		Reason:    "test",
	})
	require.NoError(t, err)

	// Simulate drift in the cached quantity
	store.products[p.ID].CurrentQuantity = types.Must("99")

	sum, err := engine.Recompute(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(types.Must("8")))
	assert.True(t, store.products[p.ID].CurrentQuantity.Equal(types.Must("8")))
}

func TestEngine_ProductMovements(t *testing.T) {
	store := newMemStore()
	p := newTestProduct("0")
	other := product.New("Onions", "VEG-002", "kg")
	store.addProduct(p)
	store.addProduct(other)
	engine := newTestEngine(store)
	ctx := context.Background()

	for _, pid := range []id.ID{p.ID, other.ID, p.ID} {
		_, err := engine.Apply(ctx, Request{
			ProductID: pid,
			Type:      ledger.TypeEntry,
			Quantity:  types.Must("1"),
			Reason:    "test",
		})
		require.NoError(t, err)
	}

	res, err := engine.ProductMovements(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalCount)
	for _, m := range res.Items {
		assert.Equal(t, p.ID, m.ProductID)
	}
}
