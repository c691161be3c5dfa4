package domain

import (
	"strconv"

	"github.com/utafrali/CatalogGo/pkg/pagination"
)

// ListQuery is the typed search specification built from request parameters.
// Text becomes a scored full-text clause; the remaining fields become
// non-scoring filter clauses. Engines serialize it to their own wire format.
type ListQuery struct {
	Text     string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Window   pagination.Window
}

// HasPriceRange reports whether at least one price bound is set.
func (q *ListQuery) HasPriceRange() bool {
	return q.MinPrice != nil || q.MaxPrice != nil
}

// SearchResult is a page of matching products with the backend's total count.
type SearchResult struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

// Bucket is an aggregation entry for a discrete value.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RangeBucket is an aggregation entry for a numeric range. An absent bound
// means the range is open on that side.
type RangeBucket struct {
	Key   string   `json:"key"`
	From  *float64 `json:"from,omitempty"`
	To    *float64 `json:"to,omitempty"`
	Count int      `json:"count"`
}

// Facets describes the distribution of the catalog across the current
// search context.
type Facets struct {
	Category []Bucket      `json:"category"`
	Brand    []Bucket      `json:"brand"`
	Price    []RangeBucket `json:"price"`
	Rating   []RangeBucket `json:"rating"`
}

// Range is a half-open numeric interval [From, To). A nil bound is open.
type Range struct {
	From *float64
	To   *float64
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	if r.From != nil && v < *r.From {
		return false
	}
	if r.To != nil && v >= *r.To {
		return false
	}
	return true
}

// Key renders the range identifier in the backend's bucket key format,
// e.g. "*-50.0", "50.0-100.0", "1000.0-*".
func (r Range) Key() string {
	from := "*"
	if r.From != nil {
		from = strconv.FormatFloat(*r.From, 'f', 1, 64)
	}
	to := "*"
	if r.To != nil {
		to = strconv.FormatFloat(*r.To, 'f', 1, 64)
	}
	return from + "-" + to
}

func bound(v float64) *float64 { return &v }

// PriceRanges and RatingRanges are fixed facet boundaries. They are policy
// constants shared with API consumers; changing them is a breaking change.
var (
	PriceRanges = []Range{
		{To: bound(50)},
		{From: bound(50), To: bound(100)},
		{From: bound(100), To: bound(500)},
		{From: bound(500), To: bound(1000)},
		{From: bound(1000)},
	}

	RatingRanges = []Range{
		{To: bound(2)},
		{From: bound(2), To: bound(3)},
		{From: bound(3), To: bound(4)},
		{From: bound(4), To: bound(5)},
	}
)
