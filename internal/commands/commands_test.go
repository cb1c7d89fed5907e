package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/apperrors"
)

func TestDefaultIndex(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	cmds := table.Commands()
	require.NotEmpty(t, cmds)
	for i, c := range cmds {
		assert.Equal(t, i+1, c.Index, "indexes are contiguous from 1")
		assert.NotEmpty(t, c.Description, c.Name)
		assert.NotEmpty(t, c.Category, c.Name)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)
}

func TestResolve(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	inv, err := table.Resolve("3", []string{"BU0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	assert.Equal(t, "inspect", inv.Command.Command)
	assert.Equal(t, []string{"inspect", "BU0123456789abcdef0123456789abcdef"}, inv.Argv())

	inv, err = table.Resolve("10", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"summary"}, inv.Argv())

	inv, err = table.Resolve(" 10 ", []string{"calls.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"summary", "calls.csv"}, inv.Argv())
}

func TestResolveUsageErrors(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name  string
		index string
		args  []string
	}{
		{"unknown index", "999", []string{"x"}},
		{"zero", "0", nil},
		{"not a number", "inspect", nil},
		{"missing required arg", "3", nil},
		{"too many args", "2", []string{"21211", "extra"}},
		{"args to a command that takes none", "1", []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Resolve(tt.index, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUsage)
			assert.Equal(t, apperrors.ExitUsage, apperrors.ExitCode(err))
		})
	}
}

func TestCommandArity(t *testing.T) {
	c := Command{Index: 4, Args: []string{"path", "[limit]"}}
	assert.Equal(t, 1, c.MinArgs())
	assert.Equal(t, 2, c.MaxArgs())
	assert.Equal(t, "4 <path> [limit]", c.Usage())
}

func TestLoadRejectsBadRows(t *testing.T) {
	_, err := Load(strings.NewReader("commands:\n  1:\n    name: No Target\n"))
	assert.ErrorIs(t, err, apperrors.ErrParse)

	_, err = Load(strings.NewReader("commands:\n  0:\n    name: Zero\n    command: index\n"))
	assert.ErrorIs(t, err, apperrors.ErrParse)

	_, err = Load(strings.NewReader("commands: {}\n"))
	assert.ErrorIs(t, err, apperrors.ErrParse)

	_, err = Load(strings.NewReader("commands: [\n"))
	assert.Error(t, err)
}

func TestCategoriesKeepFirstAppearance(t *testing.T) {
	table, err := Load(strings.NewReader(`
commands:
  1: {name: A, command: a, category: Beta}
  2: {name: B, command: b, category: Alpha}
  3: {name: C, command: c, category: Beta}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha"}, table.Categories())
}
