package exporter

import (
	"strings"

	"plant-report/internal/exporter/data"
	"plant-report/internal/exporter/html"
	"plant-report/internal/exporter/sqlite"
	"plant-report/internal/exporter/word"
)

// GetExporters returns a list of Exporters based on requested formats.
// Aliases map to the same exporter and each exporter appears once, in request order.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		name := CanonicalFormat(fmtStr)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		case "json":
			exporters = append(exporters, data.NewJSONExporter())
		case "yaml":
			exporters = append(exporters, data.NewYAMLExporter())
		case "sqlite":
			exporters = append(exporters, sqlite.NewSQLiteExporter())
		}
	}

	return exporters
}

// CanonicalFormat resolves a format alias, returning "" for unknown formats
func CanonicalFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "excel", "xlsx":
		return "excel"
	case "html":
		return "html"
	case "word", "docx":
		return "word"
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "sqlite", "db":
		return "sqlite"
	}
	return ""
}
