package exporter

import (
	"plant-report/internal/config"
	"plant-report/internal/model"
)

// Exporter is the unified interface for all reporting strategies.
// Export writes the report and returns the path of the file it produced.
type Exporter interface {
	Export(rep *model.Report, cfg *config.Config) (string, error)
}
