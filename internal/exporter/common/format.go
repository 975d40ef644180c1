package common

import (
	"plant-report/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCapacity renders a capacity with grouping separators, e.g. 12,345.6
func FormatCapacity(f float64) string {
	return printer.Sprintf("%.1f", f)
}

// FormatCount renders a count with grouping separators
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// CellTexts renders a sheet row for text-based formats
func CellTexts(row []model.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.Text()
	}
	return out
}

// NumericColumns reports, per column, whether every present cell is a number.
// Text formats use it to right-align figures.
func NumericColumns(sheet model.Sheet) []bool {
	numeric := make([]bool, len(sheet.Header))
	for i := range numeric {
		numeric[i] = true
		seen := false
		for _, row := range sheet.Rows {
			if i >= len(row) || row[i].IsMissing() {
				continue
			}
			seen = true
			if row[i].Kind != model.KindNumber {
				numeric[i] = false
				break
			}
		}
		if !seen {
			numeric[i] = false
		}
	}
	return numeric
}
