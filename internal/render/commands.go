package render

import (
	"strings"

	"github.com/twctl/twctl/internal/commands"
)

// CommandIndex renders the numeric command index grouped by category.
func CommandIndex(t *commands.Table) string {
	var b strings.Builder
	b.WriteString(title("twctl commands"))
	b.WriteString("Run by number: twctl <number> [args...]   e.g. twctl 8 239\n\n")

	byCategory := make(map[string][][]string)
	for _, c := range t.Commands() {
		byCategory[c.Category] = append(byCategory[c.Category], []string{
			yellow(c.Usage()), c.Name, c.Command, c.Description,
		})
	}
	for i, cat := range t.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title(green(cat)))
		b.WriteString(table([]string{"Number", "Name", "Command", "Description"}, byCategory[cat]))
	}
	return b.String()
}
