package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/engine"
	"github.com/utafrali/CatalogGo/internal/repository"
)

// batchSize is the number of products written per store round-trip.
const batchSize = 20

// retryInterval is the initial wait before re-running initialization after
// a failure.
const retryInterval = 5 * time.Second

// Fetcher retrieves the complete product catalog from the upstream feed.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
}

// Seeder prepares the storage backends and populates them from the feed.
// It is idempotent: a catalog that already holds products is left untouched.
type Seeder struct {
	repo    repository.ProductRepository
	engine  engine.SearchEngine
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates a seeder over the given backends.
func New(repo repository.ProductRepository, eng engine.SearchEngine, fetcher Fetcher, logger *slog.Logger) *Seeder {
	return &Seeder{
		repo:    repo,
		engine:  eng,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Run performs initialization, retrying the whole sequence with exponential
// backoff until it succeeds or the context is cancelled. Backend failures
// are expected at startup while MySQL and Elasticsearch come up.
func (s *Seeder) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInterval

	for {
		err := s.runOnce(ctx)
		if err == nil {
			return nil
		}

		wait := bo.NextBackOff()
		s.logger.Error("initialization failed, retrying",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", wait),
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runOnce executes one initialization attempt: schema, index, then load.
func (s *Seeder) runOnce(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return err
	}

	if err := s.engine.Ping(ctx); err != nil {
		return err
	}

	if err := s.engine.EnsureIndex(ctx); err != nil {
		return err
	}

	return s.load(ctx)
}

// load populates both backends from the feed unless products are already
// present. Batch write failures are logged and skipped, never retried or
// rolled back: the next clean start reconciles via upserts.
func (s *Seeder) load(ctx context.Context) error {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		s.logger.Info("products already loaded", "count", existing)
		return nil
	}

	products, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		// A dead feed is terminal for this run: the catalog simply
		// stays empty.
		s.logger.Error("error fetching products from feed", slog.String("error", err.Error()))
		return nil
	}
	if len(products) == 0 {
		s.logger.Info("no products fetched")
		return nil
	}

	s.logger.Info("loading products", "count", len(products))

	for start := 0; start < len(products); start += batchSize {
		end := start + batchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[start:end]

		if err := s.repo.BulkUpsert(ctx, batch); err != nil {
			s.logger.Error("batch upsert failed",
				slog.Int("offset", start),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := s.engine.BulkIndex(ctx, batch); err != nil {
			s.logger.Error("batch indexing failed",
				slog.Int("offset", start),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("successfully loaded products", "count", len(products))
	return nil
}
