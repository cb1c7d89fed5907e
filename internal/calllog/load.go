package calllog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/logger"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

type column int

const (
	colTimestamp column = iota
	colFrom
	colTo
	colDuration
	colStatus
	colDirection
	colErrorCode
	colCallSID
	numColumns
)

var columnNames = [numColumns]string{
	"timestamp", "from", "to", "duration", "status", "direction", "error code", "call sid",
}

// columnAliases lists accepted header spellings per column, in priority
// order, after normalizeHeader. Start Time wins over Date Created when an
// export carries both.
var columnAliases = [numColumns][]string{
	colTimestamp: {"timestamp", "starttime", "datecreated", "date", "time"},
	colFrom:      {"from", "fromnumber", "caller"},
	colTo:        {"to", "tonumber", "called"},
	colDuration:  {"duration", "durations", "durationseconds", "durationsec"},
	colStatus:    {"status", "callstatus"},
	colDirection: {"direction"},
	colErrorCode: {"errorcode"},
	colCallSID:   {"callsid", "sid"},
}

var requiredColumns = []column{colTimestamp, colFrom, colTo, colDuration, colStatus, colDirection}

// Load reads a call log from path. The parser is chosen from the file
// extension (.csv or .xlsx). Invalid rows are skipped and reported as
// warnings; only an unreadable, empty, or headerless file fails the load.
func Load(path string) (*Book, []RowWarning, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening call log: %v: %w", err, apperrors.ErrParse)
		}
		defer f.Close()
		return Read(f)
	case ".xlsx":
		rows, err := readExcel(path)
		if err != nil {
			return nil, nil, err
		}
		return build(rows)
	default:
		return nil, nil, fmt.Errorf("unsupported call log format %q (want .csv or .xlsx): %w", ext, apperrors.ErrParse)
	}
}

// Read parses a CSV call log stream.
func Read(r io.Reader) (*Book, []RowWarning, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, nil, err
	}
	return build(rows)
}

// readCSV returns every record with its 1-based line number. Records that the
// csv package rejects are returned as nil rows so they surface as warnings.
func readCSV(r io.Reader) ([]sourceRow, error) {
	reader := bufio.NewReader(r)
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	var rows []sourceRow
	for {
		fields, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rows = append(rows, sourceRow{line: perr.StartLine, err: perr.Err})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %v: %w", err, apperrors.ErrParse)
		}
		line, _ := csvReader.FieldPos(0)
		rows = append(rows, sourceRow{line: line, fields: fields})
	}
	return rows, nil
}

func readExcel(path string) ([]sourceRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %v: %w", err, apperrors.ErrParse)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets: %w", apperrors.ErrParse)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading rows from xlsx: %v: %w", err, apperrors.ErrParse)
	}

	rows := make([]sourceRow, len(records))
	for i, rec := range records {
		rows[i] = sourceRow{line: i + 1, fields: rec}
	}
	return rows, nil
}

type sourceRow struct {
	line   int
	fields []string
	err    error
}

func (r sourceRow) blank() bool {
	if r.err != nil {
		return false
	}
	for _, cell := range r.fields {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var errEmptyRow = fmt.Errorf("row has no values: %w", apperrors.ErrParse)

func build(rows []sourceRow) (*Book, []RowWarning, error) {
	headerAt := -1
	for i, row := range rows {
		if !row.blank() {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, nil, fmt.Errorf("call log is empty: %w", apperrors.ErrParse)
	}
	if rows[headerAt].err != nil {
		return nil, nil, fmt.Errorf("header row %d: %v: %w", rows[headerAt].line, rows[headerAt].err, apperrors.ErrParse)
	}

	index, err := resolveHeader(rows[headerAt].fields)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Log.Named("calllog")
	book := &Book{}
	var warnings []RowWarning
	for _, row := range rows[headerAt+1:] {
		if row.err != nil {
			warnings = append(warnings, RowWarning{Row: row.line, Err: row.err})
			continue
		}
		if row.blank() {
			warnings = append(warnings, RowWarning{Row: row.line, Err: errEmptyRow})
			continue
		}
		e, err := index.record(row.fields).entry()
		if err != nil {
			warnings = append(warnings, RowWarning{Row: row.line, Err: err})
			continue
		}
		book.entries = append(book.entries, e)
	}

	log.Debug("call log loaded",
		zap.Int("entries", len(book.entries)),
		zap.Int("skipped", len(warnings)))
	return book, warnings, nil
}

// headerIndex maps each column to its position in a row, or -1.
type headerIndex [numColumns]int

func resolveHeader(header []string) (headerIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	var idx headerIndex
	for col := column(0); col < numColumns; col++ {
		idx[col] = -1
		for _, alias := range columnAliases[col] {
			if pos, ok := positions[alias]; ok {
				idx[col] = pos
				break
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if idx[col] < 0 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("no recognizable call log header (missing %s): %w",
			strings.Join(missing, ", "), apperrors.ErrParse)
	}
	return idx, nil
}

// normalizeHeader lowercases and drops everything but letters and digits,
// so "Start Time", "start_time" and "START-TIME" compare equal.
func normalizeHeader(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (h headerIndex) cell(fields []string, col column) string {
	pos := h[col]
	if pos < 0 || pos >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[pos])
}

func (h headerIndex) record(fields []string) record {
	return record{
		CallSID:   h.cell(fields, colCallSID),
		Timestamp: h.cell(fields, colTimestamp),
		From:      h.cell(fields, colFrom),
		To:        h.cell(fields, colTo),
		Duration:  h.cell(fields, colDuration),
		Status:    h.cell(fields, colStatus),
		Direction: h.cell(fields, colDirection),
		ErrorCode: h.cell(fields, colErrorCode),
	}
}
