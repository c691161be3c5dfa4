package repository

import (
	"context"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// ProductRepository defines the persistence operations for the product
// catalog's system of record.
type ProductRepository interface {
	// Ping checks whether the database is reachable.
	Ping(ctx context.Context) error

	// EnsureSchema creates the products table and its indexes if they do
	// not exist yet. Idempotent.
	EnsureSchema(ctx context.Context) error

	// Count returns the number of products stored.
	Count(ctx context.Context) (int, error)

	// GetByID fetches a single product by its primary key. Returns a
	// not-found error when no row exists.
	GetByID(ctx context.Context, id int) (*domain.Product, error)

	// BulkUpsert inserts the given products, updating all attributes of
	// rows whose id already exists.
	BulkUpsert(ctx context.Context, products []domain.Product) error
}
