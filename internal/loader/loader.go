package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"plant-report/internal/config"
	"plant-report/internal/model"
)

// Options controls how a CSV file is cleaned
type Options struct {
	Encoding        []string // Encoding hints tried when the input is not UTF-8
	NAValues        []string // Cell values read as missing
	ExpectedColumns []string // Columns the header must contain
	RequiredFields  []string // Rows missing any of these are dropped
	NumericColumns  []string // Columns coerced to numbers, bad values become missing
	CapacityColumn  string   // Column that must hold a number for the row to be kept
}

// OptionsFromConfig maps the input section of the configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Encoding:        cfg.Input.Encoding,
		NAValues:        cfg.Input.NAValues,
		ExpectedColumns: cfg.Input.ExpectedColumns,
		RequiredFields:  cfg.Input.RequiredFields,
		NumericColumns:  cfg.Input.NumericColumns,
		CapacityColumn:  cfg.Input.CapacityColumn,
	}
}

// RowIssue describes a row that was dropped or a cell that was coerced
type RowIssue struct {
	Line    int
	Dropped bool
	Reason  string
}

// Stats summarizes what cleaning did to the input
type Stats struct {
	Encoding     string
	RowsRead     int
	RowsKept     int
	RowsDropped  int
	CellsCoerced int
	Issues       []RowIssue
}

// Result is a cleaned table plus cleaning statistics
type Result struct {
	Table *model.Table
	Stats Stats
}

// Load reads and cleans the CSV file at path.
// A missing file keeps fs.ErrNotExist in the error chain.
func Load(path string, opts Options) (*Result, error) {
	content, enc, err := ReadFile(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	res, err := Parse(strings.NewReader(content), path, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.Encoding = enc
	return res, nil
}

// rawRow is a record that passed the required-field checks
type rawRow struct {
	line  int
	cells []string
}

// Parse reads CSV text and returns the cleaned table.
// name is only used in error messages.
func Parse(r io.Reader, name string, opts Options) (*Result, error) {
	reader := csv.NewReader(r)
	// Short rows are padded, long rows are reported with their line
	reader.FieldsPerRecord = -1
	// A stray quote inside an unquoted field is kept as text
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &ParseError{Path: name, Err: ErrNoData}
		}
		return nil, toParseError(name, err)
	}

	columns := normalizeHeader(header)
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	if err := checkColumns(index, opts); err != nil {
		return nil, &ParseError{Path: name, Line: 1, Err: err}
	}

	na := make(map[string]bool, len(opts.NAValues))
	for _, v := range opts.NAValues {
		na[v] = true
	}
	isNA := func(s string) bool {
		return na[s] || strings.TrimSpace(s) == ""
	}

	res := &Result{}
	var kept []rawRow
	capacities := make([]float64, 0)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(name, err)
		}
		line, _ := reader.FieldPos(0)
		res.Stats.RowsRead++

		if len(record) > len(columns) {
			return nil, &ParseError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: expected %d, saw %d", ErrRaggedRow, len(columns), len(record)),
			}
		}
		cells := make([]string, len(columns))
		copy(cells, record)

		if reason := missingRequired(cells, index, opts.RequiredFields, isNA); reason != "" {
			res.drop(line, reason)
			continue
		}

		capacity := 0.0
		if opts.CapacityColumn != "" {
			raw := cells[index[opts.CapacityColumn]]
			if isNA(raw) {
				res.drop(line, "missing "+opts.CapacityColumn)
				continue
			}
			f, ok := parseNumber(raw)
			if !ok {
				res.drop(line, fmt.Sprintf("%s %q is not numeric", opts.CapacityColumn, raw))
				continue
			}
			capacity = f
		}

		kept = append(kept, rawRow{line: line, cells: cells})
		capacities = append(capacities, capacity)
	}

	table := model.NewTable(columns)
	table.Rows = make([][]model.Value, len(kept))
	for i := range kept {
		table.Rows[i] = make([]model.Value, len(columns))
	}

	numeric := make(map[string]bool, len(opts.NumericColumns))
	for _, c := range opts.NumericColumns {
		numeric[c] = true
	}

	for col, colName := range columns {
		switch {
		case colName == opts.CapacityColumn:
			for i := range kept {
				table.Rows[i][col] = model.Number(capacities[i])
			}
		case numeric[colName]:
			for i, row := range kept {
				raw := row.cells[col]
				if isNA(raw) {
					continue
				}
				f, ok := parseNumber(raw)
				if !ok {
					res.Stats.CellsCoerced++
					res.Stats.Issues = append(res.Stats.Issues, RowIssue{
						Line:   row.line,
						Reason: fmt.Sprintf("%s %q coerced to missing", colName, raw),
					})
					continue
				}
				table.Rows[i][col] = model.Number(f)
			}
		default:
			fillInferred(table, col, kept, isNA)
		}
	}

	res.Table = table
	res.Stats.RowsKept = len(kept)
	return res, nil
}

func (r *Result) drop(line int, reason string) {
	r.Stats.RowsDropped++
	r.Stats.Issues = append(r.Stats.Issues, RowIssue{Line: line, Dropped: true, Reason: reason})
}

// fillInferred writes a column as numbers when every present cell parses, as text otherwise
func fillInferred(table *model.Table, col int, kept []rawRow, isNA func(string) bool) {
	allNumeric := true
	for _, row := range kept {
		raw := row.cells[col]
		if isNA(raw) {
			continue
		}
		if _, ok := parseNumber(raw); !ok {
			allNumeric = false
			break
		}
	}

	for i, row := range kept {
		raw := row.cells[col]
		if isNA(raw) {
			continue
		}
		if allNumeric {
			f, _ := parseNumber(raw)
			table.Rows[i][col] = model.Number(f)
		} else {
			table.Rows[i][col] = model.String(raw)
		}
	}
}

// normalizeHeader trims names, fills blanks and de-duplicates repeats
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}

// checkColumns verifies the header carries every column the options rely on
func checkColumns(index map[string]int, opts Options) error {
	needed := make([]string, 0, len(opts.ExpectedColumns)+len(opts.RequiredFields)+len(opts.NumericColumns)+1)
	needed = append(needed, opts.ExpectedColumns...)
	needed = append(needed, opts.RequiredFields...)
	needed = append(needed, opts.NumericColumns...)
	if opts.CapacityColumn != "" {
		needed = append(needed, opts.CapacityColumn)
	}

	var missing []string
	reported := make(map[string]bool)
	for _, c := range needed {
		if _, ok := index[c]; ok || reported[c] {
			continue
		}
		reported[c] = true
		missing = append(missing, c)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// missingRequired returns a drop reason, or "" when every required field is present
func missingRequired(cells []string, index map[string]int, required []string, isNA func(string) bool) string {
	for _, field := range required {
		if isNA(cells[index[field]]) {
			return "missing " + field
		}
	}
	return ""
}

// parseNumber accepts finite decimal numbers, ignoring surrounding spaces
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toParseError(name string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: name, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Path: name, Err: err}
}
