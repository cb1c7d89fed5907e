package render

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const na = "N/A"

// table renders rows under header the same way everywhere.
func table(header []string, rows [][]string) string {
	var b strings.Builder
	t := tablewriter.NewWriter(&b)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.AppendBulk(rows)
	t.Render()
	return b.String()
}

// keyValues renders a two-column field/value panel.
func keyValues(pairs [][2]string) string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return table([]string{"Field", "Value"}, rows)
}

func title(s string) string {
	return bold(s) + "\n"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return na
	}
	return s
}

func orNAPtr(p *string) string {
	if p == nil {
		return na
	}
	return orNA(*p)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
