package sweep

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultDelimiter separates columns in the results table.
const DefaultDelimiter = '\t'

// ParseOptions controls how a results table is split into fields.
type ParseOptions struct {
	// Delimiter separates columns. Zero means DefaultDelimiter. The exporter
	// that produces the table writes ',' when saving to a .csv file.
	Delimiter rune
}

func (o ParseOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// ParseError reports a malformed results table. A table that fails to parse
// is rejected as a whole; no partial record set is ever returned.
type ParseError struct {
	Line   int    // 1-based line number; 0 when the problem is the whole input
	Column string // header name involved, if any
	Msg    string
	Err    error // underlying cause, if any
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse results table")
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %s", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a tab-separated results table. See ParseWith.
func Parse(text string) ([]TrialRecord, error) {
	return ParseWith(text, ParseOptions{})
}

// ParseWith reads a results table: a header row naming the columns, then one
// data row per trial aligned positionally to the header. Every field is
// trimmed before parsing and blank lines are skipped. Record order follows
// row order.
//
// The header must name all eight columns (Policy, Associativity, CacheSize,
// BlockSize, Hits, Misses, HitRate, TraceFile); extra columns are ignored but
// still count toward the row width. A header with no data rows yields an
// empty record slice.
func ParseWith(text string, opts ParseOptions) ([]TrialRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Msg: "input is empty"}
	}
	comma := opts.delimiter()
	if !validDelimiter(comma) {
		return nil, &ParseError{Msg: fmt.Sprintf("invalid delimiter %q", comma)}
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // width is checked against the header below
	reader.LazyQuotes = true

	names, err := reader.Read()
	if err != nil {
		return nil, csvError(err, 1)
	}
	header, err := parseHeader(trimFields(names))
	if err != nil {
		return nil, err
	}

	records := make([]TrialRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err, 0)
		}
		lineNo, _ := reader.FieldPos(0)
		values := trimFields(row)
		if len(values) != len(header) {
			return nil, &ParseError{
				Line: lineNo,
				Msg:  fmt.Sprintf("expected %d fields, got %d", len(header), len(values)),
			}
		}
		rec, err := parseRow(values, header, lineNo)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// validDelimiter mirrors the separators encoding/csv accepts.
func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

func csvError(err error, line int) error {
	var cerr *csv.ParseError
	if errors.As(err, &cerr) {
		line = cerr.Line
	}
	return &ParseError{Line: line, Msg: "malformed row", Err: err}
}

// headerColumn binds one header position to a known Field; ok is false for
// columns the table carries but the pipeline does not use.
type headerColumn struct {
	name  string
	field Field
	ok    bool
}

func parseHeader(names []string) ([]headerColumn, error) {
	if strings.Join(names, "") == "" {
		return nil, &ParseError{Line: 1, Msg: "header row is empty"}
	}

	columns := make([]headerColumn, len(names))
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, &ParseError{Line: 1, Column: name, Msg: "duplicate column"}
		}
		seen[name] = true
		f, ok := FieldForColumn(name)
		columns[i] = headerColumn{name: name, field: f, ok: ok}
	}
	for _, f := range Fields() {
		if !seen[f.Column()] {
			return nil, &ParseError{Line: 1, Column: f.Column(), Msg: "missing required column"}
		}
	}
	return columns, nil
}

// minValue is the smallest value each integer column admits.
var minValue = map[Field]int64{
	FieldAssociativity: 1,
	FieldHits:          0,
	FieldMisses:        0,
}

func parseRow(values []string, header []headerColumn, lineNo int) (TrialRecord, error) {
	var rec TrialRecord
	for i, col := range header {
		if !col.ok {
			continue
		}
		raw := values[i]
		if !col.field.IsNumeric() {
			switch col.field {
			case FieldPolicy:
				rec.Policy = Policy(raw)
			case FieldTraceFile:
				rec.TraceFile = raw
			}
			continue
		}

		fail := func(msg string, err error) (TrialRecord, error) {
			return TrialRecord{}, &ParseError{Line: lineNo, Column: col.name, Msg: msg, Err: err}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(fmt.Sprintf("invalid number %q", raw), err)
		}
		// ParseFloat accepts "NaN" and "Inf", which are not real numbers.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fail(fmt.Sprintf("invalid number %q", raw), nil)
		}
		if col.field == FieldHitRate {
			rec.HitRate = v
			continue
		}
		if v != math.Trunc(v) {
			return fail(fmt.Sprintf("expected an integer, got %q", raw), nil)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return fail(fmt.Sprintf("integer %q out of range", raw), nil)
		}
		n := int64(v)
		if lo, ok := minValue[col.field]; ok && n < lo {
			return fail(fmt.Sprintf("must be at least %d, got %d", lo, n), nil)
		}
		switch col.field {
		case FieldAssociativity:
			rec.Associativity = n
		case FieldCacheSize:
			rec.CacheSize = n
		case FieldBlockSize:
			rec.BlockSize = n
		case FieldHits:
			rec.Hits = n
		case FieldMisses:
			rec.Misses = n
		}
	}
	return rec, nil
}

// trimFields trims every field, which also drops stray '\r' characters.
func trimFields(fields []string) []string {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
