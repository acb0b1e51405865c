package domain

// Event listing page sizes.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects one page of an event listing. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// NewPaginationParams clamps page to at least 1 and pageSize to 1..MaxPageSize. A pageSize below 1
// means DefaultPageSize.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PaginationParams{Page: page, PageSize: pageSize}
}

// Bounds returns the half-open index range of this page within n items. A page past the end yields
// start == end == n.
func (p PaginationParams) Bounds(n int) (start, end int) {
	p = NewPaginationParams(p.Page, p.PageSize)
	if p.Page-1 >= (n+p.PageSize-1)/p.PageSize {
		return n, n
	}
	start = (p.Page - 1) * p.PageSize
	return start, min(start+p.PageSize, n)
}
