package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when the client does not specify one.
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// DefaultParams returns the default pagination parameters.
func DefaultParams() Params {
	return Params{
		Page:   1,
		Limit:  DefaultLimit,
		Offset: 0,
	}
}

// FromRequest extracts `page` and `limit` query parameters from an HTTP
// request, falling back to defaults for missing or invalid values.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxLimit {
			p.Limit = v
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// TotalPages returns ceil(totalCount/limit) for the given params.
func (p Params) TotalPages(totalCount int) int {
	pages := totalCount / p.Limit
	if totalCount%p.Limit > 0 {
		pages++
	}
	return pages
}
