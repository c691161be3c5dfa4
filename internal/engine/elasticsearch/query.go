package elasticsearch

import (
	"github.com/utafrali/CatalogGo/internal/domain"
)

// searchFields are the fields queried by full-text search. Title matches
// weigh double.
var searchFields = []string{"title^2", "description", "brand", "category"}

// buildBoolQuery translates a list query into an Elasticsearch bool query.
// Free text goes into must (scored); structured criteria go into filter
// (unscored, cacheable).
func buildBoolQuery(q *domain.ListQuery) map[string]any {
	must := []any{}
	if q.Text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  q.Text,
				"fields": searchFields,
			},
		})
	}

	filter := []any{}
	if q.Category != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"category": q.Category},
		})
	}
	if q.Brand != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"brand": q.Brand},
		})
	}
	if q.HasPriceRange() {
		bounds := map[string]any{}
		if q.MinPrice != nil {
			bounds["gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			bounds["lte"] = *q.MaxPrice
		}
		filter = append(filter, map[string]any{
			"range": map[string]any{"price": bounds},
		})
	}

	return map[string]any{
		"bool": map[string]any{
			"must":   must,
			"filter": filter,
		},
	}
}

// buildSearchBody builds the request body for a paginated product search.
func buildSearchBody(q *domain.ListQuery) map[string]any {
	return map[string]any{
		"from":  q.Window.Offset,
		"size":  q.Window.Limit,
		"query": buildBoolQuery(q),
	}
}

// buildCategoriesBody builds a zero-hit request that aggregates the distinct
// category values in ascending key order. The terms size is far above any
// realistic category cardinality so no value is truncated.
func buildCategoriesBody() map[string]any {
	return map[string]any{
		"size": 0,
		"aggs": map[string]any{
			"categories": map[string]any{
				"terms": map[string]any{
					"field": "category",
					"size":  1000,
					"order": map[string]any{"_key": "asc"},
				},
			},
		},
	}
}

// rangeSpecs converts the fixed facet boundaries into range-aggregation
// entries. Nil bounds are omitted so the edge buckets stay open.
func rangeSpecs(ranges []domain.Range) []any {
	specs := make([]any, 0, len(ranges))
	for _, r := range ranges {
		spec := map[string]any{}
		if r.From != nil {
			spec["from"] = *r.From
		}
		if r.To != nil {
			spec["to"] = *r.To
		}
		specs = append(specs, spec)
	}
	return specs
}

// buildAggsBody builds a zero-hit request computing all four facets over the
// documents matching the query's clauses.
func buildAggsBody(q *domain.ListQuery) map[string]any {
	return map[string]any{
		"size":  0,
		"query": buildBoolQuery(q),
		"aggs": map[string]any{
			"categories": map[string]any{
				"terms": map[string]any{
					"field": "category",
					"order": map[string]any{"_key": "asc"},
				},
			},
			"brands": map[string]any{
				"terms": map[string]any{
					"field": "brand",
					"order": map[string]any{"_key": "asc"},
				},
			},
			"price_ranges": map[string]any{
				"range": map[string]any{
					"field":  "price",
					"ranges": rangeSpecs(domain.PriceRanges),
				},
			},
			"rating_ranges": map[string]any{
				"range": map[string]any{
					"field":  "rating",
					"ranges": rangeSpecs(domain.RatingRanges),
				},
			},
		},
	}
}
