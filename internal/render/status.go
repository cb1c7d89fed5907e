// Package render turns twctl results into terminal text. Every function is
// pure: it returns a string and performs no I/O.
package render

import (
	"strings"

	"github.com/fatih/color"
)

// Category groups the many status spellings Twilio uses.
type Category string

const (
	Approved Category = "approved"
	Pending  Category = "pending"
	Rejected Category = "rejected"
	Unknown  Category = "unknown"
)

var statusCategories = map[string]Category{}

func init() {
	for cat, values := range map[Category][]string{
		Approved: {"APPROVED", "ACTIVE", "REGISTERED", "COMPLETED", "TWILIO_APPROVED", "VERIFIED", "SUCCESS"},
		Pending:  {"PENDING", "PENDING_REVIEW", "IN_REVIEW", "SUBMITTED", "DRAFT", "IN_PROGRESS"},
		Rejected: {"FAILED", "REJECTED", "TWILIO_REJECTED", "DENIED", "SUSPENDED", "CLOSED"},
	} {
		for _, v := range values {
			statusCategories[v] = cat
		}
	}
}

var statusReplacer = strings.NewReplacer("-", "_", " ", "_")

// StatusStyle classifies a status value. Case is ignored and "-", "_" and
// spaces are interchangeable. Anything unrecognized, including "", is Unknown.
func StatusStyle(v string) Category {
	key := statusReplacer.Replace(strings.ToUpper(strings.TrimSpace(v)))
	if cat, ok := statusCategories[key]; ok {
		return cat
	}
	return Unknown
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	white  = color.New(color.FgWhite).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Status colors v by its category. An empty value renders as N/A.
func Status(v string) string {
	if strings.TrimSpace(v) == "" {
		return white(na)
	}
	switch StatusStyle(v) {
	case Approved:
		return green(v)
	case Pending:
		return yellow(v)
	case Rejected:
		return red(v)
	default:
		return white(v)
	}
}

// SetColor turns ANSI colors on or off for every renderer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}
