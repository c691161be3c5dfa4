package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// Engine is an in-memory implementation of the SearchEngine interface,
// used in tests and local development without an Elasticsearch backend.
// Matching is simple substring containment rather than scored full text.
type Engine struct {
	mu       sync.RWMutex
	products map[int]domain.Product
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		products: make(map[int]domain.Product),
	}
}

// EnsureIndex is a no-op: the in-memory index always exists.
func (e *Engine) EnsureIndex(ctx context.Context) error {
	return nil
}

// Ping always succeeds.
func (e *Engine) Ping(ctx context.Context) error {
	return nil
}

// BulkIndex adds or replaces the given products.
func (e *Engine) BulkIndex(ctx context.Context, products []domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range products {
		e.products[p.ID] = p
	}
	return nil
}

// matches applies the query's clauses to a single product.
func matches(q *domain.ListQuery, p *domain.Product) bool {
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Brand + " " + p.Category)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

// matching returns all products satisfying the query, ordered by id.
func (e *Engine) matching(q *domain.ListQuery) []domain.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.Product, 0, len(e.products))
	for id := range e.products {
		p := e.products[id]
		if matches(q, &p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search returns one page of products matching the query.
func (e *Engine) Search(ctx context.Context, query *domain.ListQuery) (*domain.SearchResult, error) {
	all := e.matching(query)
	total := len(all)

	start := query.Window.Offset
	if start > total {
		start = total
	}
	end := start + query.Window.Limit
	if end > total {
		end = total
	}

	return &domain.SearchResult{
		Total:    total,
		Products: all[start:end],
	}, nil
}

// Categories returns the distinct category values in ascending order.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range e.products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// Aggregate computes facet buckets over the products matching the query.
// Term buckets are ordered by ascending key.
func (e *Engine) Aggregate(ctx context.Context, query *domain.ListQuery) (*domain.Facets, error) {
	all := e.matching(query)

	categoryCounts := make(map[string]int)
	brandCounts := make(map[string]int)
	priceCounts := make([]int, len(domain.PriceRanges))
	ratingCounts := make([]int, len(domain.RatingRanges))

	for i := range all {
		p := &all[i]
		if p.Category != "" {
			categoryCounts[p.Category]++
		}
		if p.Brand != "" {
			brandCounts[p.Brand]++
		}
		for j, r := range domain.PriceRanges {
			if r.Contains(p.Price) {
				priceCounts[j]++
			}
		}
		for j, r := range domain.RatingRanges {
			if r.Contains(p.Rating) {
				ratingCounts[j]++
			}
		}
	}

	return &domain.Facets{
		Category: termBuckets(categoryCounts),
		Brand:    termBuckets(brandCounts),
		Price:    rangeBuckets(domain.PriceRanges, priceCounts),
		Rating:   rangeBuckets(domain.RatingRanges, ratingCounts),
	}, nil
}

func termBuckets(counts map[string]int) []domain.Bucket {
	out := make([]domain.Bucket, 0, len(counts))
	for key, count := range counts {
		out = append(out, domain.Bucket{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func rangeBuckets(ranges []domain.Range, counts []int) []domain.RangeBucket {
	out := make([]domain.RangeBucket, 0, len(ranges))
	for i, r := range ranges {
		out = append(out, domain.RangeBucket{
			Key:   r.Key(),
			From:  r.From,
			To:    r.To,
			Count: counts[i],
		})
	}
	return out
}
