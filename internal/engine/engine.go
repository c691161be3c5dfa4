package engine

import (
	"context"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// SearchEngine defines the interface for indexing and querying the product
// search index. Implementations may use Elasticsearch or in-memory storage.
type SearchEngine interface {
	// EnsureIndex creates the product index with its field mapping if it
	// does not exist yet. Idempotent.
	EnsureIndex(ctx context.Context) error

	// Ping checks whether the search backend is reachable.
	Ping(ctx context.Context) error

	// Search executes a list query and returns one page of matching
	// products with the total match count.
	Search(ctx context.Context, query *domain.ListQuery) (*domain.SearchResult, error)

	// Categories returns the distinct category values in ascending
	// lexical order.
	Categories(ctx context.Context) ([]string, error)

	// Aggregate computes facet buckets over the documents matching the
	// query's clauses; no documents are returned.
	Aggregate(ctx context.Context, query *domain.ListQuery) (*domain.Facets, error)

	// BulkIndex adds or updates multiple products in the search index.
	BulkIndex(ctx context.Context, products []domain.Product) error
}
