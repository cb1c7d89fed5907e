// Package calllog loads Twilio call log exports (CSV or XLSX) into an
// immutable Book and summarizes them.
package calllog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/twctl/twctl/internal/validator"
)

// Entry is one validated call record. Fields are read-only after Load.
type Entry struct {
	CallSID   string
	Timestamp time.Time
	From      string
	To        string
	Duration  time.Duration
	Status    string
	Direction string
	ErrorCode *int
}

// RowWarning describes a row that was skipped during Load. Row is the
// 1-based row number in the source file, header included.
type RowWarning struct {
	Row int
	Err error
}

func (w RowWarning) Error() string {
	return fmt.Sprintf("row %d: %v", w.Row, w.Err)
}

func (w RowWarning) Unwrap() error { return w.Err }

// record is the raw, string-typed view of a row before conversion.
type record struct {
	CallSID   string `json:"call_sid"`
	Timestamp string `json:"timestamp" validate:"required"`
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Duration  string `json:"duration" validate:"required,numeric"`
	Status    string `json:"status" validate:"required"`
	Direction string `json:"direction" validate:"required"`
	ErrorCode string `json:"error_code" validate:"omitempty,numeric"`
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	"2006-01-02 15:04:05 MST",
	"15:04:05 MST 2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func (r record) entry() (Entry, error) {
	if err := validator.Validate(r); err != nil {
		return Entry{}, err
	}

	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return Entry{}, err
	}

	secs, err := strconv.Atoi(r.Duration)
	if err != nil || secs < 0 {
		return Entry{}, fmt.Errorf("field 'duration' must be a whole number of seconds >= 0, got %q", r.Duration)
	}

	e := Entry{
		CallSID:   r.CallSID,
		Timestamp: ts,
		From:      r.From,
		To:        r.To,
		Duration:  time.Duration(secs) * time.Second,
		Status:    r.Status,
		Direction: r.Direction,
	}
	if r.ErrorCode != "" {
		code, err := strconv.Atoi(r.ErrorCode)
		if err != nil {
			return Entry{}, fmt.Errorf("field 'error_code' must be an integer, got %q", r.ErrorCode)
		}
		e.ErrorCode = &code
	}
	return e, nil
}
