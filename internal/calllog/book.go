package calllog

import "strings"

// Book is an ordered, read-only collection of call log entries in source row
// order.
type Book struct {
	entries []Entry
}

// NewBook builds a Book from already-validated entries.
func NewBook(entries []Entry) *Book {
	return &Book{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns a copy of the entries.
func (b *Book) Entries() []Entry {
	if b == nil {
		return nil
	}
	return append([]Entry(nil), b.entries...)
}

// Find returns entries whose From or To contains query. Spaces, dashes and
// parentheses are ignored on both sides so "(816) 555" matches "+1816555...".
func (b *Book) Find(query string) []Entry {
	q := compactNumber(query)
	if q == "" || b == nil {
		return nil
	}
	var out []Entry
	for _, e := range b.entries {
		if strings.Contains(compactNumber(e.From), q) || strings.Contains(compactNumber(e.To), q) {
			out = append(out, e)
		}
	}
	return out
}

func compactNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, s)
}
