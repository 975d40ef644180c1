package app

import (
	"fmt"
	"os"
	"path/filepath"

	"plant-report/internal/analyzer"
	"plant-report/internal/config"
	"plant-report/internal/exporter"
	"plant-report/internal/loader"
	"plant-report/internal/logger"
	"plant-report/internal/model"
	"plant-report/internal/ui"
)

// ReportTitle is written into document properties and side formats
const ReportTitle = "European Power Plants Report"

// Result describes a finished run
type Result struct {
	Report *model.Report
	Stats  loader.Stats

	// Paths of the written files, Excel first
	Paths []string
}

// Run loads and cleans the input, summarizes it and writes every requested report.
// The Excel workbook is always written; other formats follow in request order.
// The first failure aborts the run.
func Run(cfg *config.Config) (*Result, error) {
	if err := CheckInput(cfg); err != nil {
		return nil, err
	}

	pipeline := ui.NewPipeline(ui.DefaultPhases())
	if !cfg.Output.Progress {
		pipeline.Disable()
	}
	defer pipeline.Finish()

	// --- Phase 1: Loading & Cleaning ---
	logger.Info("Loading and cleaning data...")
	loadBar := pipeline.NextPhase(1)
	loadBar.Describe(filepath.Base(cfg.Input.Path))

	loaded, err := loader.Load(cfg.Input.Path, loader.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Input.Path, err)
	}
	loadBar.Increment()
	loadBar.Finish()
	logCleaning(cfg.Input.Path, loaded.Stats)

	// --- Phase 2: Analysis ---
	logger.Info("Analyzing data...")
	groups := cfg.Analysis.Groups
	analyzeBar := pipeline.NextPhase(len(groups))

	summaries, err := analyzer.SummarizeAll(loaded.Table, groups, analyzer.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize: %w", err)
	}
	for _, s := range summaries {
		analyzeBar.Describe(s.Title)
		logger.Debug("%s: %d groups, %d rows without %s dropped", s.Title, len(s.Groups), s.Dropped, s.Column)
		analyzeBar.Increment()
	}
	analyzeBar.Finish()

	rep, err := BuildReport(loaded.Table, summaries, cfg)
	if err != nil {
		return nil, err
	}

	// --- Phase 3: Reporting ---
	logger.Info("Generating Excel report...")
	formats := append([]string{"excel"}, cfg.Output.Formats...)
	exporters := exporter.GetExporters(formats)
	genBar := pipeline.NextPhase(len(exporters))

	result := &Result{Report: rep, Stats: loaded.Stats}
	for _, exp := range exporters {
		path, err := exp.Export(rep, cfg)
		if err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
		result.Paths = append(result.Paths, path)
		genBar.Describe(filepath.Base(path))
		logger.Info("Report generated: %s", path)
		genBar.Increment()
	}
	genBar.Finish()

	logger.Info("Process complete.")
	return result, nil
}

// CheckInput verifies the input file exists before anything is written.
// A missing file keeps fs.ErrNotExist in the error chain.
func CheckInput(cfg *config.Config) error {
	info, err := os.Stat(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", cfg.Input.Path)
	}
	return nil
}

// BuildReport assembles the primary sheet and one sheet per summary, in order
func BuildReport(table *model.Table, summaries []*analyzer.Summary, cfg *config.Config) (*model.Report, error) {
	total, err := table.Sum(cfg.Input.CapacityColumn)
	if err != nil {
		return nil, err
	}

	sheets := make([]model.Sheet, 0, len(summaries))
	for _, s := range summaries {
		sheets = append(sheets, model.NewSheet(s.Title, s.Title+"Table", s.Table()))
	}

	rep := model.NewReport(ReportTitle, cfg.RunDate,
		model.NewSheet(model.PrimarySheetName, model.PrimaryTableName, table),
		sheets...,
	)
	rep.TotalPlants = table.Len()
	rep.TotalCapacity = total
	return rep, nil
}

// logCleaning records what cleaning did; row details go to the log file only
func logCleaning(path string, stats loader.Stats) {
	logger.Debug("Input %s decoded as %s", path, stats.Encoding)
	logger.Debug("Rows read: %d, kept: %d, dropped: %d, cells coerced: %d",
		stats.RowsRead, stats.RowsKept, stats.RowsDropped, stats.CellsCoerced)

	for _, issue := range stats.Issues {
		logger.LogRowIssue(path, issue.Line, issue.Reason)
	}

	if stats.RowsKept == 0 {
		logger.Warn("No rows left after cleaning %s (%d read, %d dropped)", path, stats.RowsRead, stats.RowsDropped)
	}
}
