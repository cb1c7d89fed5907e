package calllog

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/apperrors"
	"github.com/xuri/excelize/v2"
)

const consoleHeader = "Call Sid,Start Time,Date Created,From,To,Direction,Status,Duration,Error Code\n"

func TestReadConsoleExportWithBOM(t *testing.T) {
	data := "\xEF\xBB\xBF" + consoleHeader +
		"CA1,2024-05-01 14:03:22,2024-04-30 10:00:00,+18165550100,+14155550111,outbound-api,completed,62,\n" +
		"CA2,2024-05-02T09:00:00Z,,+18165550100,+14155550122,inbound,Failed,0,21211\n"

	book, warnings, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, book.Len())

	entries := book.Entries()
	assert.Equal(t, "CA1", entries[0].CallSID)
	assert.Equal(t, time.Date(2024, 5, 1, 14, 3, 22, 0, time.UTC), entries[0].Timestamp)
	assert.Equal(t, 62*time.Second, entries[0].Duration)
	assert.Nil(t, entries[0].ErrorCode)
	require.NotNil(t, entries[1].ErrorCode)
	assert.Equal(t, 21211, *entries[1].ErrorCode)
}

func TestReadAliasesAreCaseInsensitive(t *testing.T) {
	data := "TIMESTAMP,from,TO,duration_seconds,STATUS,direction\n" +
		"2024-01-01,+1,+2,5,busy,inbound\n"

	book, warnings, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, book.Len())
}

func TestReadSkipsInvalidRows(t *testing.T) {
	data := consoleHeader +
		"CA1,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,10,\n" +
		"CA2,2024-05-01 14:03:22,,,+1415,inbound,completed,10,\n" +
		"CA3,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,-4,\n" +
		"CA4,yesterday,,+1816,+1415,inbound,completed,10,\n" +
		"\n" +
		"CA5,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,1.5,\n" +
		"CA6,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,10,oops\n"

	book, warnings, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
	require.Len(t, warnings, 5)

	rows := make([]int, len(warnings))
	for i, w := range warnings {
		rows[i] = w.Row
	}
	assert.Equal(t, []int{3, 4, 5, 7, 8}, rows)
	assert.Contains(t, warnings[0].Error(), "field 'from' is required")
	assert.Contains(t, warnings[2].Error(), "unrecognized timestamp")
}

func TestReadWarnsOnEmptyDataRows(t *testing.T) {
	data := consoleHeader +
		"CA1,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,10,\n" +
		",,,,,,,,\n" +
		"CA2,2024-05-01 14:03:22,,+1816,+1415,inbound,completed,1.5,\n"

	book, warnings, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, 3-len(warnings), book.Len())
	assert.Equal(t, 3, warnings[0].Row)
	assert.True(t, apperrors.IsParseError(warnings[0]))
	assert.Equal(t, 4, warnings[1].Row)
}

func TestReadFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"blank lines only", "\n\n"},
		{"no recognizable header", "a,b,c\n1,2,3\n"},
		{"partial header", "From,To,Status\n+1,+2,completed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.True(t, apperrors.IsParseError(err))
		})
	}
}

func TestLoadRejectsUnknownExtensionAndMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "calls.json"))
	assert.True(t, apperrors.IsParseError(err))

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, apperrors.IsParseError(err))
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Start Time", "From", "To", "Duration", "Status", "Direction", "Error Code"},
		{"2024-03-01 08:00:00", "+15550001", "+15550002", 30, "completed", "inbound", ""},
		{"2024-03-01 09:00:00", "+15550001", "+15550003", 0, "no-answer", "outbound-dial", ""},
		{"2024-03-02 10:00:00", "+15550004", "", 12, "completed", "inbound", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	book, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Len())
	require.Len(t, warnings, 1)
	assert.Equal(t, 4, warnings[0].Row)

	s := Summarize(book)
	assert.Equal(t, map[string]int{"2024-03-01": 2}, s.ByDay)
	assert.Equal(t, 30*time.Second, s.TotalDuration)
}

func TestSummarizeEmpty(t *testing.T) {
	for _, b := range []*Book{nil, NewBook(nil)} {
		s := Summarize(b)
		assert.Zero(t, s.TotalCalls)
		assert.Zero(t, s.TotalDuration)
		assert.NotNil(t, s.ByStatus)
		assert.Empty(t, s.ByDay)
		assert.Zero(t, s.AverageDuration())
	}
}

func TestSummarizeGroupsLowercase(t *testing.T) {
	ts := time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	book := NewBook([]Entry{
		{Timestamp: ts, Status: "Completed", Direction: "Inbound", Duration: 10 * time.Second},
		{Timestamp: ts, Status: "completed", Direction: "inbound", Duration: 20 * time.Second},
	})

	s := Summarize(book)
	assert.Equal(t, map[string]int{"completed": 2}, s.ByStatus)
	assert.Equal(t, map[string]int{"inbound": 2}, s.ByDirection)
	// 23:30 EST is the next day in UTC
	assert.Equal(t, map[string]int{"2024-01-02": 2}, s.ByDay)
	assert.Equal(t, 15*time.Second, s.AverageDuration())
}

// generatedLog builds a CSV with n rows, every fifth of which is invalid.
func generatedLog(faker *gofakeit.Faker, n int) (string, int) {
	var b strings.Builder
	b.WriteString("Start Time,From,To,Duration,Status,Direction\n")
	invalid := 0
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(faker.Number(0, 14*24)) * time.Hour).Format(time.RFC3339)
		duration := fmt.Sprint(faker.Number(0, 900))
		if i%5 == 4 {
			duration = "-1"
			invalid++
		}
		fmt.Fprintf(&b, "%s,+1%s,+1%s,%s,%s,%s\n",
			ts, faker.Phone(), faker.Phone(), duration,
			faker.RandomString([]string{"completed", "busy", "failed", "no-answer"}),
			faker.RandomString([]string{"inbound", "outbound-api"}))
	}
	return b.String(), invalid
}

func TestGeneratedLogProperties(t *testing.T) {
	faker := gofakeit.New(20240601)
	const rows = 250
	data, invalid := generatedLog(faker, rows)

	book, warnings, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, warnings, invalid)
	assert.Equal(t, rows-len(warnings), book.Len())

	s := Summarize(book)
	assert.Equal(t, book.Len(), s.TotalCalls)

	sumDays := 0
	for _, n := range s.ByDay {
		sumDays += n
	}
	assert.Equal(t, s.TotalCalls, sumDays)

	sumStatus := 0
	for _, n := range s.ByStatus {
		sumStatus += n
	}
	assert.Equal(t, s.TotalCalls, sumStatus)

	parsed := map[string]int{}
	var last string
	chart := NewChart(s, 30)
	for chart.Next() {
		day, n, err := ParseChartLine(chart.Line())
		require.NoError(t, err)
		assert.Greater(t, day, last, "days must ascend")
		last = day
		parsed[day] = n
	}
	assert.Equal(t, s.ByDay, parsed)
}

func TestChartIsNotRestartable(t *testing.T) {
	s := Summarize(NewBook([]Entry{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: "completed", Direction: "inbound"},
	}))

	chart := NewChart(s, 10)
	require.True(t, chart.Next())
	assert.Equal(t, "2024-01-01 | ########## 1", chart.Line())
	assert.False(t, chart.Next())
	assert.False(t, chart.Next())
	assert.Empty(t, chart.Line())
}

func TestChartEmptySummary(t *testing.T) {
	chart := NewChart(Summarize(nil), 10)
	assert.False(t, chart.Next())
}

func TestParseChartLineRejectsGarbage(t *testing.T) {
	for _, line := range []string{"", "2024-01-01 ###", "yesterday | ## 2", "2024-01-01 | ## x"} {
		_, _, err := ParseChartLine(line)
		assert.Error(t, err, line)
	}
}

func TestFind(t *testing.T) {
	book := NewBook([]Entry{
		{From: "+18165550100", To: "+14155550111"},
		{From: "+12125550100", To: "+18165550199"},
		{From: "+13035550100", To: "+13035550111"},
	})

	assert.Len(t, book.Find("816"), 2)
	assert.Len(t, book.Find("(303) 555"), 1)
	assert.Empty(t, book.Find("999"))
	assert.Empty(t, book.Find(""))
}
