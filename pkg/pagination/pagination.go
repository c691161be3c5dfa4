package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when the request does not ask for one.
	DefaultLimit = 20

	// MaxLimit is the hard cap on page size. Larger requests are silently
	// capped, not rejected.
	MaxLimit = 100
)

// Window is a limit/offset pagination window.
type Window struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultWindow returns the default pagination window.
func DefaultWindow() Window {
	return Window{Limit: DefaultLimit, Offset: 0}
}

// NewWindow builds a window from raw limit/offset values, applying the
// capping policy: limit defaults to DefaultLimit when not positive and is
// capped at MaxLimit; negative offsets are floored to 0.
func NewWindow(limit, offset int) Window {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Window{Limit: limit, Offset: offset}
}

// FromRequest extracts the pagination window from `limit` and `offset` query
// parameters. Non-numeric values fall back to the defaults.
func FromRequest(r *http.Request) Window {
	limit := 0
	offset := 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	return NewWindow(limit, offset)
}
