package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/CatalogGo/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRepo struct {
	count       int
	countErr    error
	schemaErr   error
	upsertErr   error
	failBatch   int // 1-based batch ordinal to fail, 0 = never
	schemaCalls int
	upsertCalls int
	upserted    [][]domain.Product
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

func (f *fakeRepo) EnsureSchema(ctx context.Context) error {
	f.schemaCalls++
	return f.schemaErr
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) BulkUpsert(ctx context.Context, products []domain.Product) error {
	f.upsertCalls++
	if f.failBatch == f.upsertCalls {
		return errors.New("deadlock")
	}
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, products)
	return nil
}

type fakeEngine struct {
	pingErr      error
	indexErr     error
	bulkErr      error
	ensureCalls  int
	indexed      [][]domain.Product
}

func (f *fakeEngine) EnsureIndex(ctx context.Context) error {
	f.ensureCalls++
	return f.indexErr
}

func (f *fakeEngine) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeEngine) Search(ctx context.Context, q *domain.ListQuery) (*domain.SearchResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) Categories(ctx context.Context) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) Aggregate(ctx context.Context, q *domain.ListQuery) (*domain.Facets, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) BulkIndex(ctx context.Context, products []domain.Product) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.indexed = append(f.indexed, products)
	return nil
}

type fakeFetcher struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

func catalog(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{ID: i + 1, Title: fmt.Sprintf("Product %d", i+1)}
	}
	return products
}

func TestRunSeedsEmptyCatalog(t *testing.T) {
	repo := &fakeRepo{}
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{products: catalog(50)}

	s := New(repo, eng, fetcher, newTestLogger())
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, repo.schemaCalls)
	assert.Equal(t, 1, eng.ensureCalls)

	// 50 products in batches of 20 is 3 batches.
	require.Len(t, repo.upserted, 3)
	assert.Len(t, repo.upserted[0], 20)
	assert.Len(t, repo.upserted[2], 10)
	require.Len(t, eng.indexed, 3)
	assert.Equal(t, repo.upserted[1], eng.indexed[1])
}

func TestRunSkipsPopulatedCatalog(t *testing.T) {
	repo := &fakeRepo{count: 194}
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{products: catalog(10)}

	s := New(repo, eng, fetcher, newTestLogger())
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, 0, repo.upsertCalls)
	assert.Empty(t, eng.indexed)
	// Schema and index are still ensured before the count check.
	assert.Equal(t, 1, repo.schemaCalls)
	assert.Equal(t, 1, eng.ensureCalls)
}

func TestRunFeedFailureIsTerminal(t *testing.T) {
	repo := &fakeRepo{}
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}

	s := New(repo, eng, fetcher, newTestLogger())
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestRunSkipsFailedBatch(t *testing.T) {
	repo := &fakeRepo{failBatch: 2}
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{products: catalog(60)}

	s := New(repo, eng, fetcher, newTestLogger())
	require.NoError(t, s.Run(context.Background()))

	// Batch 2 fails at the store: it is skipped in both backends while
	// batches 1 and 3 go through.
	assert.Equal(t, 3, repo.upsertCalls)
	assert.Len(t, repo.upserted, 2)
	assert.Len(t, eng.indexed, 2)
}

func TestRunIndexFailureDoesNotAbort(t *testing.T) {
	repo := &fakeRepo{}
	eng := &fakeEngine{bulkErr: errors.New("es down")}
	fetcher := &fakeFetcher{products: catalog(40)}

	s := New(repo, eng, fetcher, newTestLogger())
	require.NoError(t, s.Run(context.Background()))

	assert.Len(t, repo.upserted, 2)
	assert.Empty(t, eng.indexed)
}

func TestRunRetriesUntilBackendsReady(t *testing.T) {
	repo := &fakeRepo{schemaErr: errors.New("dial tcp: connection refused")}
	eng := &fakeEngine{}
	fetcher := &fakeFetcher{products: catalog(5)}

	s := New(repo, eng, fetcher, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, repo.schemaCalls, 1)
}
