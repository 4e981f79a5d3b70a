package pagination

import (
	"net/url"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Params is page/limit pagination parsed from the query string.
type Params struct {
	Page  int
	Limit int
}

// FromQuery reads page and limit, clamping out-of-range values to
// defaults instead of erroring.
func FromQuery(q url.Values) Params {
	p := Params{Page: defaultPage, Limit: defaultLimit}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination envelope returned alongside list results.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewMeta(p Params, total int64) Meta {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
