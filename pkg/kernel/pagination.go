package kernel

// PaginationOptions carries page-based listing parameters.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPagination returns the default listing window.
func DefaultPagination() PaginationOptions {
	return PaginationOptions{Page: 1, PageSize: 20}
}

// Normalize clamps invalid values to sane defaults.
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}

// Offset returns the SQL offset for the current page.
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageInfo describes the window of a paginated result.
type PageInfo struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
}

// Paginated wraps a page of items together with its window description.
type Paginated[T any] struct {
	Items []T      `json:"items"`
	Page  PageInfo `json:"page"`
	Empty bool     `json:"empty"`
}

// NewPaginated builds a Paginated result.
func NewPaginated[T any](items []T, page, size, total int) *Paginated[T] {
	return &Paginated[T]{
		Items: items,
		Page:  PageInfo{Number: page, Size: size, Total: total},
		Empty: len(items) == 0,
	}
}
