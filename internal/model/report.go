package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// PrimarySheetName is the title of the sheet holding the full cleaned table
	PrimarySheetName = "All Power Plants"

	// PrimaryTableName is the table name registered on the primary sheet
	PrimaryTableName = "PowerPlantsTable"

	// TableStyle is the named banded style applied to every registered table
	TableStyle = "TableStyleMedium9"

	// WidthPadding is added to the longest cell text of a column
	WidthPadding = 2

	// MaxColumnWidth is the widest column a spreadsheet accepts
	MaxColumnWidth = 255
)

// Sheet is a rendered table ready for any exporter
type Sheet struct {
	// Sheet title (e.g., "Summary by Country")
	Name string

	// Table name, spaces already replaced by underscores
	TableName string

	// Header row
	Header []string

	// Data rows, same width as Header
	Rows [][]Value

	// Column widths in characters, one per header cell
	Widths []float64

	// Banded is true when the range qualifies as a styled table
	Banded bool
}

// NewSheet renders a table into a sheet.
// baseTableName is sanitized into a valid table name.
func NewSheet(name, baseTableName string, t *Table) Sheet {
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)

	s := Sheet{
		Name:      name,
		TableName: TableName(baseTableName),
		Header:    header,
		Rows:      t.Rows,
	}
	s.Widths = ColumnWidths(s.Header, s.Rows)
	s.Banded = len(s.Rows)+1 >= 2 && len(s.Header) >= 2
	return s
}

// TableName derives a table name from a title
func TableName(base string) string {
	return strings.ReplaceAll(base, " ", "_")
}

// ValidTableName reports whether name is accepted as a spreadsheet table name:
// a letter or underscore first, then letters, digits, underscores or periods.
func ValidTableName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > MaxColumnWidth {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '.'):
		default:
			return false
		}
	}
	return true
}

// ColumnWidths returns, per column, the longest header or cell text plus padding
func ColumnWidths(header []string, rows [][]Value) []float64 {
	widths := make([]float64, len(header))
	for i, h := range header {
		longest := utf8.RuneCountInString(h)
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			if n := utf8.RuneCountInString(row[i].Text()); n > longest {
				longest = n
			}
		}
		w := float64(longest + WidthPadding)
		if w > MaxColumnWidth {
			w = MaxColumnWidth
		}
		widths[i] = w
	}
	return widths
}

// Report is the full output of one run: the primary sheet followed by summaries
type Report struct {
	// Human readable title used in document properties and side formats
	Title string

	// Unique ID of the run that produced the report
	RunID string

	// Date the report is stamped with
	RunDate time.Time

	// Sheets in output order, primary first
	Sheets []Sheet

	// Totals over the cleaned table
	TotalPlants   int
	TotalCapacity float64
}

// NewReport assembles a report with a fresh run ID
func NewReport(title string, runDate time.Time, primary Sheet, summaries ...Sheet) *Report {
	sheets := make([]Sheet, 0, len(summaries)+1)
	sheets = append(sheets, primary)
	sheets = append(sheets, summaries...)

	return &Report{
		Title:   title,
		RunID:   uuid.NewString(),
		RunDate: runDate,
		Sheets:  sheets,
	}
}

// Primary returns the sheet holding the full record table
func (r *Report) Primary() Sheet {
	return r.Sheets[0]
}

// Summaries returns the summary sheets in order
func (r *Report) Summaries() []Sheet {
	return r.Sheets[1:]
}

// DateString returns the run date as YYYY-MM-DD
func (r *Report) DateString() string {
	return r.RunDate.Format("2006-01-02")
}
