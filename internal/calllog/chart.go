package calllog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	chartSeparator = " | "
	chartGlyph     = "#"
)

// Chart renders Summary.ByDay as one text bar per day in ascending date
// order. It is consumed like bufio.Scanner and cannot be restarted:
//
//	c := calllog.NewChart(s, 40)
//	for c.Next() {
//		fmt.Println(c.Line())
//	}
type Chart struct {
	days   []string
	counts map[string]int
	width  int
	max    int
	pos    int
	line   string
	done   bool
}

// NewChart prepares a chart whose longest bar is width glyphs wide. A width
// below 1 is treated as 1.
func NewChart(s Summary, width int) *Chart {
	if width < 1 {
		width = 1
	}
	c := &Chart{
		days:   s.Days(),
		counts: make(map[string]int, len(s.ByDay)),
		width:  width,
	}
	for day, n := range s.ByDay {
		c.counts[day] = n
		if n > c.max {
			c.max = n
		}
	}
	return c
}

// Next advances to the next day. Once it returns false it always does.
func (c *Chart) Next() bool {
	if c.done || c.pos >= len(c.days) {
		c.done = true
		c.line = ""
		return false
	}
	day := c.days[c.pos]
	c.pos++
	c.line = c.render(day, c.counts[day])
	return true
}

// Line returns the line produced by the last successful Next.
func (c *Chart) Line() string {
	return c.line
}

func (c *Chart) render(day string, n int) string {
	bar := 0
	if c.max > 0 {
		bar = n * c.width / c.max
	}
	if n > 0 && bar == 0 {
		bar = 1
	}
	return fmt.Sprintf("%s%s%-*s %d", day, chartSeparator, c.width, strings.Repeat(chartGlyph, bar), n)
}

// ParseChartLine recovers the day and count from a line produced by Chart.
func ParseChartLine(line string) (string, int, error) {
	day, rest, ok := strings.Cut(line, chartSeparator)
	if !ok {
		return "", 0, fmt.Errorf("chart line %q: missing separator", line)
	}
	if _, err := time.Parse(DayLayout, day); err != nil {
		return "", 0, fmt.Errorf("chart line %q: bad day: %w", line, err)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", 0, fmt.Errorf("chart line %q: missing count", line)
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("chart line %q: bad count", line)
	}
	return day, n, nil
}
