// Package pagination computes page windows and navigation links for
// page-number based listings.
package pagination

import (
	"fmt"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page describes one window over a collection of Count items.
type Page struct {
	Count       int64
	CurrentPage int
	Limit       int
	TotalPages  int
	Next        *string
	Prev        *string
}

// ParsePage parses a 1-based page number, falling back to DefaultPage for
// missing, malformed or non-positive values.
func ParsePage(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParseLimit parses a page size, falling back to DefaultLimit.
func ParseLimit(raw string) int {
	return parsePositive(raw, DefaultLimit)
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// New builds the window for page p of size s over count items. Pages past
// TotalPages are not clamped: they yield an empty window whose links follow
// the same rules.
func New(count int64, page, limit int, basePath string) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := int((count + int64(limit) - 1) / int64(limit))
	p := Page{
		Count:       count,
		CurrentPage: page,
		Limit:       limit,
		TotalPages:  totalPages,
	}
	if page < totalPages {
		p.Next = link(basePath, page+1, limit)
	}
	if page > 1 {
		p.Prev = link(basePath, page-1, limit)
	}
	return p
}

// Skip is the number of items preceding this window.
func (p Page) Skip() int64 {
	return int64(p.CurrentPage-1) * int64(p.Limit)
}

func link(basePath string, page, limit int) *string {
	s := fmt.Sprintf("%s?page=%d&limit=%d", basePath, page, limit)
	return &s
}
