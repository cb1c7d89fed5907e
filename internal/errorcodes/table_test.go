package errorcodes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/apperrors"
)

func TestDefaultKnownCode(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 40)

	e, err := table.Lookup(21211)
	require.NoError(t, err)
	assert.Equal(t, "Invalid 'To' Phone Number", e.Message)
	assert.NotEmpty(t, e.Solutions)
}

func TestDefaultIsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLookupUnknownCode(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	_, err = table.Lookup(999999999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "999999999")
	assert.Empty(t, table.Message(999999999))
}

func TestLoadRejectsDuplicates(t *testing.T) {
	_, err := Load(strings.NewReader(`[
		{"code": 1, "message": "one"},
		{"code": 1, "message": "uno"}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate code 1")
}

func TestLoadRejectsIncompleteRows(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `[{"code": 5}]`},
		{"missing code", `[{"message": "x"}]`},
		{"not json", `{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestCodesSorted(t *testing.T) {
	table, err := Load(strings.NewReader(`[
		{"code": 30, "message": "c"},
		{"code": 10, "message": "a"},
		{"code": 20, "message": "b"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, table.Codes())
}
