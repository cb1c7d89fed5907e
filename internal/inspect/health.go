package inspect

import (
	"context"
	"sort"
	"strings"

	"github.com/twctl/twctl/internal/trusthub"
)

// Verdict summarizes a health score.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictFair      Verdict = "fair"
	VerdictAttention Verdict = "needs attention"
	VerdictEmpty     Verdict = "no profiles"
)

// StatusCount is the number of profiles in one status.
type StatusCount struct {
	Status string
	Count  int
	Health string // healthy, pending or needs attention
}

// Health is the account-wide profile health summary.
type Health struct {
	Total    int
	Approved int
	Pending  int
	Rejected int
	Statuses []StatusCount
	Score    float64 // approved / total * 100
	Verdict  Verdict
}

// HealthCheck counts profiles by status and scores the share that is
// approved: excellent at 80 or more, fair at 60 or more.
func (in *Inspector) HealthCheck(ctx context.Context) (*Health, error) {
	profiles, err := in.client.ListProfiles(ctx, in.limit)
	if err != nil {
		return nil, err
	}
	return Score(profiles), nil
}

// Score computes Health from a profile listing.
func Score(profiles []trusthub.CustomerProfile) *Health {
	h := &Health{Total: len(profiles)}
	counts := make(map[string]int)
	for _, p := range profiles {
		status := p.Status
		if status == "" {
			status = "unknown"
		}
		counts[status]++
		switch statusHealth(status) {
		case "healthy":
			h.Approved++
		case "needs attention":
			h.Rejected++
		default:
			h.Pending++
		}
	}

	for status, n := range counts {
		h.Statuses = append(h.Statuses, StatusCount{Status: status, Count: n, Health: statusHealth(status)})
	}
	sort.Slice(h.Statuses, func(i, j int) bool {
		if h.Statuses[i].Count != h.Statuses[j].Count {
			return h.Statuses[i].Count > h.Statuses[j].Count
		}
		return h.Statuses[i].Status < h.Statuses[j].Status
	})

	switch {
	case h.Total == 0:
		h.Verdict = VerdictEmpty
	default:
		h.Score = float64(h.Approved) / float64(h.Total) * 100
		switch {
		case h.Score >= 80:
			h.Verdict = VerdictExcellent
		case h.Score >= 60:
			h.Verdict = VerdictFair
		default:
			h.Verdict = VerdictAttention
		}
	}
	return h
}

func statusHealth(status string) string {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(status))
	switch {
	case norm == "TWILIO_APPROVED":
		return "healthy"
	case strings.Contains(norm, "REJECTED"):
		return "needs attention"
	default:
		return "pending"
	}
}
