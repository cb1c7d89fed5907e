// Package errorcodes maps Twilio numeric error codes to their published
// messages. The table is embedded in the binary and parsed once.
package errorcodes

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/twctl/twctl/internal/apperrors"
)

//go:embed errors.json
var embedded []byte

// Entry is one row of the error code table.
type Entry struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Product     string `json:"product,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	Causes      string `json:"causes,omitempty"`
	Solutions   string `json:"solutions,omitempty"`
}

// Table is a read-only code → entry index.
type Table struct {
	entries map[int]Entry
}

// Load parses a JSON array of entries. Duplicate codes and entries without a
// code or message are rejected.
func Load(r io.Reader) (*Table, error) {
	var rows []Entry
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding error code table: %w", err)
	}

	t := &Table{entries: make(map[int]Entry, len(rows))}
	for i, e := range rows {
		if e.Code <= 0 || e.Message == "" {
			return nil, fmt.Errorf("error code table row %d: code and message are required", i)
		}
		if _, dup := t.entries[e.Code]; dup {
			return nil, fmt.Errorf("error code table: duplicate code %d", e.Code)
		}
		t.entries[e.Code] = e
	}
	return t, nil
}

var loadDefault = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(embedded))
})

// Default returns the table shipped with twctl.
func Default() (*Table, error) {
	return loadDefault()
}

// Lookup returns the entry for code. Unknown codes wrap apperrors.ErrNotFound.
func (t *Table) Lookup(code int) (Entry, error) {
	if e, ok := t.entries[code]; ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("error code %d: %w", code, apperrors.ErrNotFound)
}

// Message returns the short message for code, or "" if the code is unknown.
func (t *Table) Message(code int) string {
	return t.entries[code].Message
}

// Len reports the number of codes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Codes returns every code in ascending order.
func (t *Table) Codes() []int {
	codes := make([]int, 0, len(t.entries))
	for c := range t.entries {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
