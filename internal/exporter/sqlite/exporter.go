package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"plant-report/internal/config"
	"plant-report/internal/exporter/common"
	"plant-report/internal/model"

	_ "modernc.org/sqlite"
)

// MetaTable holds run metadata as key/value pairs
const MetaTable = "report_meta"

// SQLiteExporter writes every report sheet into its own table of a SQLite database
type SQLiteExporter struct{}

func NewSQLiteExporter() *SQLiteExporter {
	return &SQLiteExporter{}
}

// Export builds the database beside its destination and renames it into place
func (e *SQLiteExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	outputFile := cfg.OutputPath(".db")
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	tmpFile := outputFile + ".tmp"
	_ = os.Remove(tmpFile)

	if err := writeDatabase(tmpFile, rep); err != nil {
		os.Remove(tmpFile)
		return "", fmt.Errorf("failed to write SQLite report: %w", err)
	}
	if err := os.Rename(tmpFile, outputFile); err != nil {
		os.Remove(tmpFile)
		return "", fmt.Errorf("failed to move SQLite report into place: %w", err)
	}
	return outputFile, nil
}

func writeDatabase(path string, rep *model.Report) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := writeMeta(tx, rep); err != nil {
		return err
	}
	for _, sheet := range rep.Sheets {
		if err := writeSheet(tx, sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}

	return tx.Commit()
}

func writeMeta(tx *sql.Tx, rep *model.Report) error {
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE %s ("key" TEXT PRIMARY KEY, "value" TEXT)`, quoteIdent(MetaTable))); err != nil {
		return err
	}
	meta := [][2]string{
		{"title", rep.Title},
		{"run_id", rep.RunID},
		{"date", rep.DateString()},
		{"total_plants", fmt.Sprintf("%d", rep.TotalPlants)},
		{"total_capacity", model.FormatNumber(rep.TotalCapacity)},
	}
	for _, kv := range meta {
		if _, err := tx.Exec(fmt.Sprintf(`INSERT INTO %s ("key", "value") VALUES (?, ?)`, quoteIdent(MetaTable)), kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(tx *sql.Tx, sheet model.Sheet) error {
	if len(sheet.Header) == 0 {
		return nil
	}

	table := quoteIdent(TableName(sheet.Name))
	numeric := common.NumericColumns(sheet)

	var defs, qCols []string
	for i, c := range ColumnNames(sheet.Header) {
		t := "TEXT"
		if numeric[i] {
			t = "REAL"
		}
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(c), t))
		qCols = append(qCols, quoteIdent(c))
	}
	if _, err := tx.Exec(`CREATE TABLE ` + table + ` (` + strings.Join(defs, ",") + `)`); err != nil {
		return err
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(sheet.Header)), ",")
	stmt, err := tx.Prepare(`INSERT INTO ` + table + ` (` + strings.Join(qCols, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range sheet.Rows {
		args := make([]any, len(sheet.Header))
		for i := range args {
			if i < len(row) {
				args[i] = row[i].Interface()
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

var identPattern = regexp.MustCompile(`[^a-z0-9]+`)

// TableName turns a sheet title into a SQL table name, e.g. "Summary by Country" -> summary_by_country
func TableName(sheet string) string {
	name := strings.Trim(identPattern.ReplaceAllString(strings.ToLower(sheet), "_"), "_")
	if name == "" {
		return "sheet"
	}
	return name
}

// ColumnNames returns the header as SQL column names. SQLite compares
// identifiers case-insensitively, so a repeat such as "Name" after "name"
// gets a numeric suffix: name, Name_2.
func ColumnNames(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		taken[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
