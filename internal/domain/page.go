package domain

import (
	"math"
	"strings"
	"unicode"
)

// QuestionsPerPage is the fixed page size of every question listing
const QuestionsPerPage = 10

// Page selects a 1-based, fixed-size window of an ordered listing
type Page struct {
	Number int
	Size   int
}

// NewPage returns page n of QuestionsPerPage items
func NewPage(n int) Page {
	return Page{Number: n, Size: QuestionsPerPage}
}

// Valid reports whether the page can hold any item. Pages whose offset does
// not fit in an int lie past the end of any listing.
func (p Page) Valid() bool {
	return p.Number >= 1 && p.Size > 0 && p.Number-1 <= math.MaxInt/p.Size
}

// Offset is the number of items before the page
func (p Page) Offset() int {
	if !p.Valid() {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Slice returns the part of items covered by the page
func Slice[T any](items []T, p Page) []T {
	if !p.Valid() {
		return nil
	}
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + min(p.Size, len(items)-start)
	return items[start:end]
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.Map(unicode.ToLower, s), strings.Map(unicode.ToLower, substr))
}
