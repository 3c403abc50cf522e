// Package pagination normalizes page requests and computes page totals.
package pagination

import "math"

const (
	// DefaultLimit is used when a request omits the page size.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
	// MaxPage caps the page number so offsets stay far from overflow.
	MaxPage = 1 << 20
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// DefaultPageSize is the page size configuration for list endpoints.
var DefaultPageSize = PageSizeConfig{Default: DefaultLimit, Max: MaxLimit}

// Request is a normalized page request. Page is 1-based.
type Request struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page describes the position of a result page.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewRequest clamps page into [1, MaxPage] and limit into [1, cfg.Max].
func NewRequest(page, limit int, cfg PageSizeConfig) Request {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit = ClampPageSize(limit, cfg)
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Request{Page: page, Limit: limit}
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// NewPage computes the page count for total matching rows.
func NewPage(req Request, total int) Page {
	pages := 0
	if req.Limit > 0 && total > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return Page{Page: req.Page, Limit: req.Limit, Total: total, Pages: pages}
}
