package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twctl/twctl/internal/trusthub"
)

func profiles(statuses ...string) []trusthub.CustomerProfile {
	out := make([]trusthub.CustomerProfile, len(statuses))
	for i, s := range statuses {
		out[i] = trusthub.CustomerProfile{Status: s}
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		score    float64
		verdict  Verdict
	}{
		{"empty", nil, 0, VerdictEmpty},
		{"all approved", []string{"twilio-approved", "TWILIO-APPROVED"}, 100, VerdictExcellent},
		{"exactly eighty", []string{"twilio-approved", "twilio-approved", "twilio-approved", "twilio-approved", "draft"}, 80, VerdictExcellent},
		{"fair", []string{"twilio-approved", "twilio-approved", "twilio-approved", "in-review", "twilio-rejected"}, 60, VerdictFair},
		{"attention", []string{"twilio-approved", "twilio-rejected", "pending-review"}, 100.0 / 3, VerdictAttention},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Score(profiles(tt.statuses...))
			assert.Equal(t, len(tt.statuses), h.Total)
			assert.InDelta(t, tt.score, h.Score, 0.001)
			assert.Equal(t, tt.verdict, h.Verdict)
			assert.Equal(t, h.Total, h.Approved+h.Pending+h.Rejected)
		})
	}
}

func TestScoreStatusRows(t *testing.T) {
	h := Score(profiles("twilio-approved", "twilio-rejected", "twilio-approved", ""))

	assert.Equal(t, []StatusCount{
		{Status: "twilio-approved", Count: 2, Health: "healthy"},
		{Status: "twilio-rejected", Count: 1, Health: "needs attention"},
		{Status: "unknown", Count: 1, Health: "pending"},
	}, h.Statuses)
}
