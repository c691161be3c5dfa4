package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/engine"
	"github.com/utafrali/CatalogGo/internal/repository"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// CatalogService routes catalog reads to the right backend: primary-key
// lookups go to the relational store, list and facet queries go to the
// search engine.
type CatalogService struct {
	repo   repository.ProductRepository
	engine engine.SearchEngine
	logger *slog.Logger
}

// NewCatalogService creates a catalog service over the given backends.
func NewCatalogService(repo repository.ProductRepository, eng engine.SearchEngine, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		engine: eng,
		logger: logger,
	}
}

// GetProduct fetches a single product by id from the system of record.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts runs a full-text, filtered, paginated search.
func (s *CatalogService) ListProducts(ctx context.Context, query *domain.ListQuery) (*domain.SearchResult, error) {
	result, err := s.engine.Search(ctx, query)
	if err != nil {
		s.logger.Error("product search failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}
	return result, nil
}

// Categories lists the distinct category values in ascending order.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.engine.Categories(ctx)
	if err != nil {
		s.logger.Error("categories aggregation failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

// Aggregations computes the facet distribution over the current search
// context.
func (s *CatalogService) Aggregations(ctx context.Context, query *domain.ListQuery) (*domain.Facets, error) {
	facets, err := s.engine.Aggregate(ctx, query)
	if err != nil {
		s.logger.Error("facet aggregation failed", slog.String("error", err.Error()))
		return nil, apperrors.Internal(err)
	}
	return facets, nil
}

// Health verifies both backends and returns the stored product count.
// The first failing dependency short-circuits.
func (s *CatalogService) Health(ctx context.Context) (int, error) {
	if err := s.repo.Ping(ctx); err != nil {
		return 0, err
	}
	if err := s.engine.Ping(ctx); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx)
}
