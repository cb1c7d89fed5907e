package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/twctl/twctl/internal/calllog"
	"github.com/twctl/twctl/internal/errorcodes"
)

// ErrorCode renders one error code entry.
func ErrorCode(e errorcodes.Entry) string {
	pairs := [][2]string{
		{"Code", strconv.Itoa(e.Code)},
		{"Message", e.Message},
	}
	if e.Product != "" {
		pairs = append(pairs, [2]string{"Product", e.Product})
	}
	if e.LogLevel != "" {
		pairs = append(pairs, [2]string{"Log Level", e.LogLevel})
	}
	out := title(fmt.Sprintf("Twilio Error %d", e.Code)) + keyValues(pairs)
	for _, extra := range []struct{ name, text string }{
		{"Description", e.Description},
		{"Possible causes", e.Causes},
		{"Possible solutions", e.Solutions},
	} {
		if extra.text != "" {
			out += "\n" + bold(extra.name) + "\n" + extra.text + "\n"
		}
	}
	out += fmt.Sprintf("\nMore info: https://www.twilio.com/docs/api/errors/%d\n", e.Code)
	return out
}

// NoErrorCode is printed when the bundled table has no entry for code.
func NoErrorCode(code int) string {
	return fmt.Sprintf("No info found for error code %d.\n", code)
}

// CallLogs renders call records. When codes is non-nil, error codes are
// followed by their published message.
func CallLogs(entries []calllog.Entry, codes *errorcodes.Table) string {
	if len(entries) == 0 {
		return "No calls found.\n"
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			orNA(e.CallSID),
			e.Timestamp.Format(time.RFC3339),
			e.From,
			e.To,
			e.Duration.String(),
			Status(e.Status),
			e.Direction,
			callError(e.ErrorCode, codes),
		}
	}
	return title(fmt.Sprintf("Call Logs (%d)", len(entries))) +
		table([]string{"Call SID", "Time", "From", "To", "Duration", "Status", "Direction", "Error"}, rows)
}

func callError(code *int, codes *errorcodes.Table) string {
	if code == nil {
		return ""
	}
	s := strconv.Itoa(*code)
	if codes != nil {
		if msg := codes.Message(*code); msg != "" {
			s += " " + msg
		}
	}
	return red(s)
}

// Warnings lists rows skipped while loading a call log.
func Warnings(ws []calllog.RowWarning) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(yellow(fmt.Sprintf("Skipped %s:", plural(len(ws), "row"))))
	b.WriteString("\n")
	for _, w := range ws {
		fmt.Fprintf(&b, "  %s\n", w.Error())
	}
	return b.String()
}

// Summary renders call totals and the by-status, by-direction and by-day
// breakdowns.
func Summary(s calllog.Summary) string {
	var b strings.Builder
	b.WriteString(title("Call Summary"))
	b.WriteString(keyValues([][2]string{
		{"Total Calls", strconv.Itoa(s.TotalCalls)},
		{"Total Duration", s.TotalDuration.String()},
		{"Average Duration", s.AverageDuration().String()},
	}))
	if s.TotalCalls == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(title("By Status"))
	b.WriteString(counts("Status", s.Statuses(), s.ByStatus, s.TotalCalls))
	b.WriteString("\n")
	b.WriteString(title("By Direction"))
	b.WriteString(counts("Direction", s.Directions(), s.ByDirection, s.TotalCalls))
	b.WriteString("\n")
	b.WriteString(title("By Day"))
	b.WriteString(counts("Day", s.Days(), s.ByDay, s.TotalCalls))
	return b.String()
}

func counts(label string, keys []string, m map[string]int, total int) string {
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k, strconv.Itoa(m[k]), fmt.Sprintf("%.1f%%", float64(m[k])*100/float64(total))}
	}
	return table([]string{label, "Calls", "Share"}, rows)
}

// Chart renders calls per day as text bars. Each line can be read back with
// calllog.ParseChartLine.
func Chart(s calllog.Summary, width int) string {
	if len(s.ByDay) == 0 {
		return "No calls to chart.\n"
	}
	var b strings.Builder
	b.WriteString(title("Calls per Day"))
	c := calllog.NewChart(s, width)
	for c.Next() {
		b.WriteString(c.Line())
		b.WriteString("\n")
	}
	return b.String()
}
