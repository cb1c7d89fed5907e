package calllog

import (
	"sort"
	"strings"
	"time"
)

// DayLayout is the key format of Summary.ByDay.
const DayLayout = "2006-01-02"

// Summary aggregates a Book. Status keys are lowercased; days are UTC dates.
type Summary struct {
	TotalCalls    int
	TotalDuration time.Duration
	ByStatus      map[string]int
	ByDay         map[string]int
	ByDirection   map[string]int
}

// Summarize computes totals over b. A nil or empty book yields zero totals and
// empty (non-nil) maps.
func Summarize(b *Book) Summary {
	s := Summary{
		ByStatus:    make(map[string]int),
		ByDay:       make(map[string]int),
		ByDirection: make(map[string]int),
	}
	if b == nil {
		return s
	}
	for _, e := range b.entries {
		s.TotalCalls++
		s.TotalDuration += e.Duration
		s.ByStatus[strings.ToLower(e.Status)]++
		s.ByDay[e.Timestamp.UTC().Format(DayLayout)]++
		s.ByDirection[strings.ToLower(e.Direction)]++
	}
	return s
}

// AverageDuration returns the mean call duration, or 0 for an empty summary.
func (s Summary) AverageDuration() time.Duration {
	if s.TotalCalls == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalCalls)
}

// Days returns the ByDay keys in ascending order.
func (s Summary) Days() []string {
	return sortedKeys(s.ByDay)
}

// Statuses returns the ByStatus keys in ascending order.
func (s Summary) Statuses() []string {
	return sortedKeys(s.ByStatus)
}

// Directions returns the ByDirection keys in ascending order.
func (s Summary) Directions() []string {
	return sortedKeys(s.ByDirection)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
