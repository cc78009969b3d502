package shared

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number, clamped to 1.
func (p Pagination) PrevPage() int { return max(p.Page-1, 1) }

// NextPage returns the following page number, clamped to the last page.
func (p Pagination) NextPage() int { return max(min(p.Page+1, p.TotalPages), 1) }

// From is the 1-based number of the first row on the page, 0 when empty.
func (p Pagination) From() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// To is the 1-based number of the last row on the page.
func (p Pagination) To() int {
	return min(p.Page*p.PerPage, p.Total)
}

// Window returns at most size page numbers centred on the current page.
func (p Pagination) Window(size int) []int {
	if p.TotalPages == 0 || size <= 0 {
		return nil
	}
	size = min(size, p.TotalPages)
	start := max(p.Page-size/2, 1)
	if start+size-1 > p.TotalPages {
		start = p.TotalPages - size + 1
	}
	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
