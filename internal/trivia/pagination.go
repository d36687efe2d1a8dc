package trivia

import "strconv"

// DefaultPageSize is the number of questions per page when none is configured.
const DefaultPageSize = 10

// Paginate returns the 1-indexed page of items. Pages outside the collection,
// including non-positive ones, are empty rather than an error.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	pages := (len(items) + size - 1) / size
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// ParsePage reads the page query parameter; anything that is not an integer means page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
