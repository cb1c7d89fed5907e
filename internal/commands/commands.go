// Package commands holds the numeric command index: a static table that maps
// small integers to twctl subcommands so operators can type `twctl 3 BU...`.
package commands

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/twctl/twctl/internal/apperrors"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var embedded []byte

// Command is one row of the index.
type Command struct {
	Index       int      `yaml:"-"`
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	Description string   `yaml:"description"`
	Args        []string `yaml:"args"`
	Category    string   `yaml:"category"`
}

// MinArgs is the number of required arguments.
func (c Command) MinArgs() int {
	n := 0
	for _, a := range c.Args {
		if !optional(a) {
			n++
		}
	}
	return n
}

// MaxArgs is the number of arguments accepted, optional ones included.
func (c Command) MaxArgs() int {
	return len(c.Args)
}

// Usage is the numeric form of the command, e.g. "3 <profile-sid>".
func (c Command) Usage() string {
	parts := []string{strconv.Itoa(c.Index)}
	for _, a := range c.Args {
		if optional(a) {
			parts = append(parts, a)
		} else {
			parts = append(parts, "<"+a+">")
		}
	}
	return strings.Join(parts, " ")
}

func optional(arg string) bool {
	return strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]")
}

// Table is the read-only command index.
type Table struct {
	byIndex map[int]Command
	indexes []int
}

type document struct {
	Commands map[int]Command `yaml:"commands"`
}

// Load parses a command index. Indexes must be positive and every row needs
// a name and a target command.
func Load(r io.Reader) (*Table, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing command index: %w", err)
	}
	if len(doc.Commands) == 0 {
		return nil, fmt.Errorf("command index is empty: %w", apperrors.ErrParse)
	}

	t := &Table{byIndex: make(map[int]Command, len(doc.Commands))}
	for idx, c := range doc.Commands {
		if idx < 1 {
			return nil, fmt.Errorf("command index %d: must be positive: %w", idx, apperrors.ErrParse)
		}
		if c.Name == "" || c.Command == "" {
			return nil, fmt.Errorf("command index %d: name and command are required: %w", idx, apperrors.ErrParse)
		}
		c.Index = idx
		t.byIndex[idx] = c
		t.indexes = append(t.indexes, idx)
	}
	sort.Ints(t.indexes)
	return t, nil
}

var loadDefault = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(embedded))
})

// Default returns the index shipped with twctl.
func Default() (*Table, error) {
	return loadDefault()
}

// Commands returns every row in index order.
func (t *Table) Commands() []Command {
	out := make([]Command, len(t.indexes))
	for i, idx := range t.indexes {
		out[i] = t.byIndex[idx]
	}
	return out
}

// Categories returns the category names in order of first appearance.
func (t *Table) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range t.Commands() {
		if !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out
}

// Lookup returns the row for index. Unknown indexes wrap apperrors.ErrUsage.
func (t *Table) Lookup(index int) (Command, error) {
	c, ok := t.byIndex[index]
	if !ok {
		return Command{}, fmt.Errorf("unknown command number %d (run `twctl index` for the list): %w", index, apperrors.ErrUsage)
	}
	return c, nil
}

// Invocation is a resolved numeric command.
type Invocation struct {
	Command Command
	Args    []string
}

// Argv is the equivalent named command line, without the program name.
func (i Invocation) Argv() []string {
	return append([]string{i.Command.Command}, i.Args...)
}

// Resolve maps `<index> [args...]` onto a command. A non-numeric or unknown
// index, or an argument count outside the command's arity, wraps
// apperrors.ErrUsage.
func (t *Table) Resolve(indexArg string, args []string) (Invocation, error) {
	index, err := strconv.Atoi(strings.TrimSpace(indexArg))
	if err != nil {
		return Invocation{}, fmt.Errorf("unknown command %q (run `twctl index` for the list): %w", indexArg, apperrors.ErrUsage)
	}
	c, err := t.Lookup(index)
	if err != nil {
		return Invocation{}, err
	}
	if len(args) < c.MinArgs() || len(args) > c.MaxArgs() {
		return Invocation{}, fmt.Errorf("%s expects %s: usage: twctl %s: %w",
			c.Name, arity(c), c.Usage(), apperrors.ErrUsage)
	}
	return Invocation{Command: c, Args: append([]string(nil), args...)}, nil
}

func arity(c Command) string {
	lo, hi := c.MinArgs(), c.MaxArgs()
	switch {
	case hi == 0:
		return "no arguments"
	case lo == hi && lo == 1:
		return "1 argument"
	case lo == hi:
		return fmt.Sprintf("%d arguments", lo)
	default:
		return fmt.Sprintf("%d to %d arguments", lo, hi)
	}
}
