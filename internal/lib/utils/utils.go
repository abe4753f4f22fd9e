// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific layer,
// such as resolving list pagination.
package utils

import (
	"strconv"
	"strings"
)

// DefaultPageSize is used when page_size is missing, malformed or not positive.
const DefaultPageSize = 5

// Page is a resolved page of a list of Count items.
type Page struct {
	Number   int
	NumPages int
	Size     int
	Offset   int
	Limit    int
}

// ParsePageSize parses a page_size query value, falling back to DefaultPageSize.
func ParsePageSize(raw string) int {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size < 1 {
		return DefaultPageSize
	}
	return size
}

// ParsePageNumber parses a page query value. Missing or non-integer values
// resolve to 1; out-of-range numbers are kept for Paginate to clamp.
func ParsePageNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return number
}

// Paginate resolves page number of a list of count items split into pages of size.
//
// An empty list still has one (empty) page. A number outside [1, NumPages]
// resolves to the last page.
func Paginate(count, number, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}

	numPages := (count + size - 1) / size
	if numPages == 0 {
		numPages = 1
	}

	if number < 1 || number > numPages {
		number = numPages
	}

	offset := (number - 1) * size
	limit := size
	if remaining := count - offset; remaining < limit {
		limit = max(remaining, 0)
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Size:     size,
		Offset:   offset,
		Limit:    limit,
	}
}
