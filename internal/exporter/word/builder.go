package word

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"plant-report/internal/config"
	"plant-report/internal/exporter/common"
	"plant-report/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

// lineBreak is turned into <w:br/> by the docx replacer
const lineBreak = "\r\n"

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "plant-report-template-*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Replace summary placeholders
	replacements := []struct{ key, value string }{
		{"{{Title}}", rep.Title},
		{"{{Date}}", rep.DateString()},
		{"{{RunID}}", rep.RunID},
		{"{{TotalPlants}}", common.FormatCount(rep.TotalPlants)},
		{"{{TotalCapacity}}", common.FormatCapacity(rep.TotalCapacity)},
		{"{{Content}}", BuildContent(rep)},
	}
	for _, rp := range replacements {
		if err := doc.Replace(rp.key, rp.value, -1); err != nil {
			return "", fmt.Errorf("failed to fill %s: %w", rp.key, err)
		}
	}

	outFile := cfg.OutputPath(".docx")
	err = common.WriteFileAtomic(outFile, func(w io.Writer) error {
		return doc.Write(w)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write Word document: %w", err)
	}

	return outFile, nil
}

// BuildContent renders every summary sheet as a fixed-width text table.
// The full record table is only referenced by its row count.
func BuildContent(rep *model.Report) string {
	var sb strings.Builder

	primary := rep.Primary()
	sb.WriteString(fmt.Sprintf("%s: %d rows, see the Excel report for details.", primary.Name, len(primary.Rows)))
	sb.WriteString(lineBreak + lineBreak)

	for i, sheet := range rep.Summaries() {
		buildSheetText(&sb, sheet)
		if i < len(rep.Summaries())-1 {
			sb.WriteString(lineBreak)
		}
	}

	return sb.String()
}

// buildSheetText writes one sheet: title, header, rule and padded rows
func buildSheetText(sb *strings.Builder, sheet model.Sheet) {
	sb.WriteString(strings.ToUpper(sheet.Name) + lineBreak)

	widths := make([]int, len(sheet.Header))
	for i, w := range sheet.Widths {
		widths[i] = int(w)
	}
	numeric := common.NumericColumns(sheet)

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = pad(truncate(c, widths[i]), widths[i], numeric[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, " "), " ") + lineBreak)
	}

	writeLine(sheet.Header)
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	sb.WriteString(strings.Repeat("-", total) + lineBreak)

	if len(sheet.Rows) == 0 {
		sb.WriteString("(no rows)" + lineBreak)
		return
	}
	for _, row := range sheet.Rows {
		writeLine(common.CellTexts(row))
	}
}

// pad fills s to width runes, right-aligning numbers
func pad(s string, width int, right bool) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	if right {
		return strings.Repeat(" ", width-n) + s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen || maxLen < 4 {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
