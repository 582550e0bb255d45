// Package paginator computes clamped 1-based page windows over an ordered
// result set.
package paginator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of posts on every listing page.
const PageSize = 10

// Meta describes one page of a listing.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// New clamps requested into [1, max(totalPages, 1)].
// An empty listing still has one (empty) page.
func New(totalItems int64, requested, size int) Meta {
	if size <= 0 {
		size = PageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	page := requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Meta{
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Offset of the first item on the page.
func (m Meta) Offset() int {
	return (m.CurrentPage - 1) * m.PageSize
}

func (m Meta) Limit() int {
	return m.PageSize
}

// ParsePage reads a raw ?page= value. Missing or non-integer input means
// page 1; range clamping happens in New once the total is known.
// Integers too large for int map to math.MaxInt so New clamps them to the
// last page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			return math.MaxInt
		}
		return 1
	}
	return n
}
