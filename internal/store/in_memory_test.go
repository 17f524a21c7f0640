package store

import (
	"context"
	"sync"
	"testing"
	"time"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/abgdnv/webshop/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRecorder collects what a store reports.
type spyRecorder struct {
	mu      sync.Mutex
	ops     []string
	errs    []error
	skipped []string
}

func (r *spyRecorder) ObserveOperation(op string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func (r *spyRecorder) DocumentSkipped(typeTag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, typeTag)
}

func Test_InMemory_EmptyStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	exists, err := s.ExistsByArticleNumber(ctx, "any")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.FindByArticleNumber(ctx, "any")
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func Test_InMemory_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	saved := product.NewFurniture("F-42", "Bookshelf", 89.95, "Five shelves")

	// when
	require.NoError(t, s.Save(ctx, saved))

	// then
	found, err := s.FindByArticleNumber(ctx, "F-42")
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	exists, err := s.ExistsByArticleNumber(ctx, "F-42")
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_InMemory_FindAll_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	products := []product.Product{
		product.NewClothing("C-1", "Scarf", 20, "Silk"),
		product.NewElectronics("E-1", "Mouse", 25, "Wireless"),
		product.NewFurniture("F-1", "Stool", 35, "Metal"),
	}
	for _, p := range products {
		require.NoError(t, s.Save(ctx, p))
	}

	all, err := s.FindAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, products, all)
}

func Test_InMemory_Duplicates(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	first := product.NewElectronics("DUP-1", "Phone", 599, "First")
	second := product.NewClothing("DUP-1", "Shirt", 29, "Second")

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	exists, err := s.ExistsByArticleNumber(ctx, "DUP-1")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := s.FindByArticleNumber(ctx, "DUP-1")
	require.NoError(t, err)
	assert.Equal(t, first, found, "the first matching document wins")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func Test_InMemory_UnknownTypeIsSkipped(t *testing.T) {
	ctx := context.Background()
	recorder := &spyRecorder{}
	s := NewInMemoryStore(WithRecorder(recorder))
	known := product.NewElectronics("E-7", "Camera", 350, "Mirrorless")
	require.NoError(t, s.Save(ctx, known))
	s.Insert(Document{Type: "unknown", ArticleNumber: "U-1", Title: "Mystery"})
	require.NoError(t, s.Save(ctx, voucher{product.Attributes{ArticleNumber: "V-1"}}))

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []product.Product{known}, all)
	assert.Equal(t, []string{"unknown", "unknown"}, recorder.skipped)

	_, err = s.FindByArticleNumber(ctx, "U-1")
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
	assert.ErrorIs(t, err, perrors.ErrUnknownProductType)

	exists, err := s.ExistsByArticleNumber(ctx, "U-1")
	require.NoError(t, err)
	assert.True(t, exists, "existence ignores the type tag")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func Test_InMemory_StrictTypes(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithStrictTypes(true))
	require.NoError(t, s.Save(ctx, product.NewClothing("C-5", "Belt", 30, "Leather")))
	s.Insert(Document{Type: "books", ArticleNumber: "B-1"})

	all, err := s.FindAll(ctx)

	assert.Nil(t, all)
	assert.ErrorIs(t, err, perrors.ErrUnknownProductType)
}

func Test_InMemory_SaveNil(t *testing.T) {
	s := NewInMemoryStore()

	err := s.Save(context.Background(), nil)

	assert.ErrorIs(t, err, perrors.ErrNilProduct)
}

func Test_InMemory_RecordsOperations(t *testing.T) {
	ctx := context.Background()
	recorder := &spyRecorder{}
	s := NewInMemoryStore(WithRecorder(recorder))

	require.NoError(t, s.Save(ctx, product.NewFurniture("F-9", "Desk", 210, "Standing")))
	_, _ = s.FindByArticleNumber(ctx, "missing")
	_, _ = s.ExistsByArticleNumber(ctx, "F-9")
	_, _ = s.FindAll(ctx)
	_, _ = s.Count(ctx)

	assert.Equal(t, []string{"save", "find_by_article_number", "exists_by_article_number", "find_all", "count"}, recorder.ops)
	assert.ErrorIs(t, recorder.errs[1], perrors.ErrProductNotFound)
}

func Test_InMemory_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, product.NewClothing("C-CONC", "Tee", 10, "")))
		}()
	}
	wg.Wait()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, count)
}
