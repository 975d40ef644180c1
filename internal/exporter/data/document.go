package data

import (
	"plant-report/internal/model"
)

// Document is the machine-readable form of a report shared by the JSON and YAML exporters
type Document struct {
	Title         string          `json:"title" yaml:"title"`
	RunID         string          `json:"run_id" yaml:"run_id"`
	Date          string          `json:"date" yaml:"date"`
	TotalPlants   int             `json:"total_plants" yaml:"total_plants"`
	TotalCapacity float64         `json:"total_capacity" yaml:"total_capacity"`
	Sheets        []SheetDocument `json:"sheets" yaml:"sheets"`
}

// SheetDocument holds one sheet; missing cells are null
type SheetDocument struct {
	Name    string          `json:"name" yaml:"name"`
	Table   string          `json:"table" yaml:"table"`
	Columns []string        `json:"columns" yaml:"columns"`
	Rows    [][]interface{} `json:"rows" yaml:"rows"`
}

// NewDocument converts a report, keeping sheet and row order
func NewDocument(rep *model.Report) Document {
	doc := Document{
		Title:         rep.Title,
		RunID:         rep.RunID,
		Date:          rep.DateString(),
		TotalPlants:   rep.TotalPlants,
		TotalCapacity: rep.TotalCapacity,
		Sheets:        make([]SheetDocument, 0, len(rep.Sheets)),
	}

	for _, sheet := range rep.Sheets {
		sd := SheetDocument{
			Name:    sheet.Name,
			Table:   sheet.TableName,
			Columns: sheet.Header,
			Rows:    make([][]interface{}, 0, len(sheet.Rows)),
		}
		for _, row := range sheet.Rows {
			cells := make([]interface{}, len(row))
			for i, v := range row {
				cells[i] = v.Interface()
			}
			sd.Rows = append(sd.Rows, cells)
		}
		doc.Sheets = append(doc.Sheets, sd)
	}

	return doc
}
