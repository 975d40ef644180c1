package exporter

import (
	"fmt"
	"io"

	"plant-report/internal/config"
	"plant-report/internal/exporter/common"
	"plant-report/internal/model"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report.
// The workbook is written next to its destination and renamed into place.
func (e *ExcelExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	outputFile := cfg.GetOutputPath()

	f, err := e.Build(rep)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = common.WriteFileAtomic(outputFile, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return outputFile, nil
}

// Build renders the report into an in-memory workbook, one sheet per report sheet
func (e *ExcelExporter) Build(rep *model.Report) (*excelize.File, error) {
	if len(rep.Sheets) == 0 {
		return nil, fmt.Errorf("report has no sheets")
	}

	f := excelize.NewFile()
	styler, err := NewStyler(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, sheet := range rep.Sheets {
		// The primary sheet takes over the default sheet so it stays first
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := e.writeSheet(f, styler, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      rep.Title,
		Subject:    fmt.Sprintf("%d power plants, %s total capacity", rep.TotalPlants, common.FormatCapacity(rep.TotalCapacity)),
		Identifier: rep.RunID,
		Creator:    "plant-report",
		Created:    rep.RunDate.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeSheet writes header and rows starting at A1, then styles the used range
func (e *ExcelExporter) writeSheet(f *excelize.File, s *Styler, sheet model.Sheet) error {
	if len(sheet.Header) == 0 {
		return nil
	}

	if err := e.writeRow(f, sheet.Name, 1, sheet.Header); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		for c, v := range row {
			// Missing cells stay empty
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, v.Interface()); err != nil {
				return err
			}
		}
	}

	lastRow := len(sheet.Rows) + 1
	lastHeader, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
	if err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(sheet.Header), lastRow)
	if err != nil {
		return err
	}

	if sheet.Banded {
		showStripes := true
		if err := f.AddTable(sheet.Name, &excelize.Table{
			Range:             "A1:" + lastCell,
			Name:              sheet.TableName,
			StyleName:         model.TableStyle,
			ShowRowStripes:    &showStripes,
			ShowColumnStripes: true,
		}); err != nil {
			return fmt.Errorf("failed to add table %s: %w", sheet.TableName, err)
		}
	}

	for i, w := range sheet.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, w); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheet.Name, "A1", lastHeader, s.HeaderStyle); err != nil {
		return err
	}
	if lastRow > 1 {
		if err := f.SetCellStyle(sheet.Name, "A2", lastCell, s.BodyStyle); err != nil {
			return err
		}
	}

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return err
		}
	}
	return nil
}
