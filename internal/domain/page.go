package domain

import "fmt"

// PageRequest is a zero-based page cursor
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest validates page >= 0 and size > 0
func NewPageRequest(page, size int) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, fmt.Errorf("page must not be negative: %w", ErrInvalidInput)
	}
	if size <= 0 {
		return PageRequest{}, fmt.Errorf("page size must be positive: %w", ErrInvalidInput)
	}
	return PageRequest{Page: page, PageSize: size}, nil
}

// Skip returns the number of rows before this page
func (r PageRequest) Skip() int {
	return r.Page * r.PageSize
}

// Take returns the page size
func (r PageRequest) Take() int {
	return r.PageSize
}

// Page is one slice of a paginated listing
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int
}

// NewPage assembles a page from a request and its query results
func NewPage[T any](req PageRequest, items []T, total int) Page[T] {
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalCount: total,
	}
}

// HasPrev reports whether an earlier page exists
func (p Page[T]) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a later page exists
func (p Page[T]) HasNext() bool {
	return (p.Page+1)*p.PageSize < p.TotalCount
}
