package html

import (
	"html/template"
	"io"
	"regexp"
	"strings"

	"plant-report/internal/config"
	"plant-report/internal/exporter/common"
	"plant-report/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// ReportData is the view model rendered by ReportTemplate
type ReportData struct {
	Title         string
	Date          string
	RunID         string
	TotalPlants   string
	TotalCapacity string
	Sheets        []SheetData
}

// SheetData is one report sheet as text cells
type SheetData struct {
	Anchor  string
	Name    string
	Header  []string
	Numeric []bool
	Rows    [][]string
}

var anchorPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NewReportData converts a report into template data
func NewReportData(rep *model.Report) ReportData {
	data := ReportData{
		Title:         rep.Title,
		Date:          rep.DateString(),
		RunID:         rep.RunID,
		TotalPlants:   common.FormatCount(rep.TotalPlants),
		TotalCapacity: common.FormatCapacity(rep.TotalCapacity),
	}

	for _, sheet := range rep.Sheets {
		sd := SheetData{
			Anchor:  strings.Trim(anchorPattern.ReplaceAllString(strings.ToLower(sheet.Name), "-"), "-"),
			Name:    sheet.Name,
			Header:  sheet.Header,
			Numeric: common.NumericColumns(sheet),
			Rows:    make([][]string, 0, len(sheet.Rows)),
		}
		for _, row := range sheet.Rows {
			sd.Rows = append(sd.Rows, common.CellTexts(row))
		}
		data.Sheets = append(data.Sheets, sd)
	}

	return data
}

func (e *HTMLExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	tmpl, err := template.New("plant-report").Funcs(template.FuncMap{
		"cellClass": cellClass,
	}).Parse(ReportTemplate)
	if err != nil {
		return "", err
	}

	data := NewReportData(rep)
	outputFile := cfg.OutputPath(".html")

	err = common.WriteFileAtomic(outputFile, func(w io.Writer) error {
		return tmpl.Execute(w, data)
	})
	if err != nil {
		return "", err
	}
	return outputFile, nil
}

// cellClass right-aligns numeric columns
func cellClass(numeric []bool, i int) string {
	if i < len(numeric) && numeric[i] {
		return "num"
	}
	return ""
}
