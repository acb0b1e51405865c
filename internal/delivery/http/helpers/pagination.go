package helpers

import (
	"net/http"
	"strconv"

	"eventplanner/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = domain.DefaultPageSize
	MaxPageSize     = domain.MaxPageSize
)

// ParsePagination reads page and page_size from the query string. Missing or unreadable values fall
// back to defaults and the rest is clamped by domain.NewPaginationParams.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = DefaultPage
	}
	pageSize, err := strconv.Atoi(q.Get("page_size"))
	if err != nil {
		pageSize = DefaultPageSize
	}
	return domain.NewPaginationParams(page, pageSize)
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page returns the items on the requested page. Out of range pages yield an empty slice.
func Page[T any](items []T, params domain.PaginationParams) []T {
	start, end := params.Bounds(len(items))
	if start == end {
		return []T{}
	}
	return items[start:end]
}
