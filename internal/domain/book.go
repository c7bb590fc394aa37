package domain

import (
	"slices"
	"strconv"
)

// Book represents a book in the library. Authors and Subjects carry the
// display names only; relational details stay in the persistence layer.
type Book struct {
	ID       int64
	Title    string
	Authors  []string
	Subjects []string
}

// SortBooks sorts books by ID in ascending order
func SortBooks(books []Book) {
	slices.SortFunc(books, func(a, b Book) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// ParseBookID interprets a path segment as a book ID. A segment made up
// entirely of decimal digits identifies a book; anything else identifies
// a tag.
func ParseBookID(segment string) (int64, bool) {
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
