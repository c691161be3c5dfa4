package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// Engine is an Elasticsearch-backed implementation of the SearchEngine interface.
type Engine struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

// New creates a new Elasticsearch engine connected to the given URL.
// If indexName is empty, DefaultIndexName ("products") is used.
// The index itself is created later via EnsureIndex.
func New(esURL string, indexName string, logger *slog.Logger) (*Engine, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	return &Engine{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}, nil
}

// Ping checks whether the Elasticsearch cluster is reachable and responsive.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.client.Cluster.Health(e.client.Cluster.Health.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch cluster health: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch cluster health: unexpected status %s", res.Status())
	}
	return nil
}

// EnsureIndex checks whether the products index exists and creates it with
// the field mapping if not. Idempotent.
func (e *Engine) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(
		[]string{e.indexName},
		e.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	exists := existsRes.StatusCode == 200
	_ = existsRes.Body.Close()

	if exists {
		e.logger.Info("elasticsearch index already exists", "index", e.indexName)
		return nil
	}

	mapping := buildIndexMapping()
	createRes, err := e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(strings.NewReader(mapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = createRes.Body.Close() }()

	if createRes.IsError() {
		return fmt.Errorf("create index: %s", decodeError(createRes.Body, createRes.Status()))
	}

	e.logger.Info("elasticsearch index created", "index", e.indexName)
	return nil
}

// Search executes a list query against Elasticsearch and returns one page of
// matching products.
func (e *Engine) Search(ctx context.Context, query *domain.ListQuery) (*domain.SearchResult, error) {
	body := buildSearchBody(query)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", decodeError(res.Body, res.Status()))
	}

	var esResp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	products := make([]domain.Product, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		p, err := decodeHit(hit)
		if err != nil {
			return nil, fmt.Errorf("elasticsearch search: decode hit: %w", err)
		}
		products = append(products, p)
	}

	return &domain.SearchResult{
		Total:    esResp.Hits.Total.Value,
		Products: products,
	}, nil
}

// Categories returns the distinct category values in ascending lexical order
// via a terms aggregation.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	data, err := json.Marshal(buildCategoriesBody())
	if err != nil {
		return nil, fmt.Errorf("elasticsearch categories: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch categories: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch categories: %s", decodeError(res.Body, res.Status()))
	}

	var esResp aggsResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch categories: decode response: %w", err)
	}

	categories := make([]string, 0, len(esResp.Aggregations.Categories.Buckets))
	for _, b := range esResp.Aggregations.Categories.Buckets {
		categories = append(categories, b.Key)
	}
	return categories, nil
}

// Aggregate computes the facet buckets over the documents matching the
// query's clauses. The query requests zero documents: only counts matter.
func (e *Engine) Aggregate(ctx context.Context, query *domain.ListQuery) (*domain.Facets, error) {
	data, err := json.Marshal(buildAggsBody(query))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch aggregate: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch aggregate: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch aggregate: %s", decodeError(res.Body, res.Status()))
	}

	var esResp aggsResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch aggregate: decode response: %w", err)
	}

	return shapeFacets(&esResp), nil
}

// BulkIndex adds or updates multiple products in the Elasticsearch index
// using the bulk NDJSON API. Per-document indexing errors do not fail the
// batch: the first error is logged and the batch is considered complete.
func (e *Engine) BulkIndex(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for i := range products {
		// Action line.
		action := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    fmt.Sprintf("%d", products[i].ID),
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode action: %w", err)
		}

		// Document line.
		if err := json.NewEncoder(&buf).Encode(products[i]); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode document: %w", err)
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithRefresh("true"),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk index: %s", decodeError(res.Body, res.Status()))
	}

	var bulkResp bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("elasticsearch bulk index: decode response: %w", err)
	}

	if bulkResp.Errors {
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type != "" {
				e.logger.Error("elasticsearch bulk indexing had errors",
					slog.String("id", item.Index.ID),
					slog.String("type", item.Index.Error.Type),
					slog.String("reason", item.Index.Error.Reason),
				)
				break
			}
		}
	}

	e.logger.Info("bulk indexed products", "count", len(products))
	return nil
}
