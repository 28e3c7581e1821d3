package question

import "strconv"

// Paginate returns the 1-based page of items. Pages outside the collection,
// including page < 1, yield an empty (non-nil) slice.
func Paginate[T any](items []T, page int) []T {
	pages := (len(items) + PageSize - 1) / PageSize
	// compare page counts before multiplying so huge pages cannot overflow
	if page < 1 || page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// ParsePage reads a page query value; anything but an integer means page 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
