package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"plant-report/internal/config"
	"plant-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testReport(t *testing.T) *model.Report {
	t.Helper()

	plants := model.NewTable([]string{"name", "country", "capacity", "commissioned"})
	require.NoError(t, plants.AppendRow([]model.Value{model.String("A"), model.String("DE"), model.Number(100), model.Number(1975)}))
	require.NoError(t, plants.AppendRow([]model.Value{model.String("B"), model.String("DE"), model.Number(50), model.Missing()}))
	require.NoError(t, plants.AppendRow([]model.Value{model.String("C"), model.String("FR"), model.Number(200), model.Number(1999)}))

	byCountry := model.NewTable([]string{"country", "Total_Capacity", "Total_Power_Plants"})
	require.NoError(t, byCountry.AppendRow([]model.Value{model.String("DE"), model.Number(150), model.Number(2)}))
	require.NoError(t, byCountry.AppendRow([]model.Value{model.String("FR"), model.Number(200), model.Number(1)}))

	empty := model.NewTable([]string{"technology", "Total_Capacity", "Total_Power_Plants"})

	rep := model.NewReport("European Power Plants", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		model.NewSheet(model.PrimarySheetName, model.PrimaryTableName, plants),
		model.NewSheet("Summary by Country", "Summary by CountryTable", byCountry),
		model.NewSheet("Summary by Technology", "Summary by TechnologyTable", empty),
	)
	rep.TotalPlants = 3
	rep.TotalCapacity = 350
	return rep
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.RunDate = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestExcelExport(t *testing.T) {
	rep := testReport(t)
	cfg := testConfig(t)

	path, err := NewExcelExporter().Export(rep, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "PowerPlants_Report_2024-01-31.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"All Power Plants", "Summary by Country", "Summary by Technology"}, f.GetSheetList())

	rows, err := f.GetRows("All Power Plants")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"name", "country", "capacity", "commissioned"}, rows[0])
	assert.Equal(t, []string{"A", "DE", "100", "1975"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 3)
	assert.Equal(t, []string{"B", "DE", "50"}, rows[2][:3])
	if len(rows[2]) > 3 {
		assert.Empty(t, rows[2][3], "missing cells stay empty")
	}

	summary, err := f.GetRows("Summary by Country")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"country", "Total_Capacity", "Total_Power_Plants"},
		{"DE", "150", "2"},
		{"FR", "200", "1"},
	}, summary)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "European Power Plants", props.Title)
	assert.Equal(t, rep.RunID, props.Identifier)
}

func TestExcelExportTables(t *testing.T) {
	rep := testReport(t)
	cfg := testConfig(t)

	path, err := NewExcelExporter().Export(rep, cfg)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		sheet string
		name  string
		rng   string
	}{
		{"All Power Plants", "PowerPlantsTable", "A1:D4"},
		{"Summary by Country", "Summary_by_CountryTable", "A1:C3"},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			tables, err := f.GetTables(tt.sheet)
			require.NoError(t, err)
			require.Len(t, tables, 1)
			assert.Equal(t, tt.name, tables[0].Name)
			assert.Equal(t, tt.rng, tables[0].Range)
			assert.Equal(t, model.TableStyle, tables[0].StyleName)

			require.NotNil(t, tables[0].ShowRowStripes)
			assert.True(t, *tables[0].ShowRowStripes, "banded rows")
			assert.True(t, tables[0].ShowColumnStripes, "banded columns")
			assert.False(t, tables[0].ShowFirstColumn)
			assert.False(t, tables[0].ShowLastColumn)
		})
	}

	// A header-only range is not a table
	tables, err := f.GetTables("Summary by Technology")
	require.NoError(t, err)
	assert.Empty(t, tables)
	rows, err := f.GetRows("Summary by Technology")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"technology", "Total_Capacity", "Total_Power_Plants"}}, rows)
}

func TestExcelExportFormatting(t *testing.T) {
	rep := testReport(t)
	cfg := testConfig(t)

	path, err := NewExcelExporter().Export(rep, cfg)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// "commissioned" is the longest text in column D
	width, err := f.GetColWidth("All Power Plants", "D")
	require.NoError(t, err)
	assert.Equal(t, float64(len("commissioned")+model.WidthPadding), width)

	width, err = f.GetColWidth("Summary by Country", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Total_Power_Plants")+model.WidthPadding), width)

	for _, cell := range []string{"A1", "C2", "D3"} {
		styleID, err := f.GetCellStyle("All Power Plants", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Alignment, cell)
		assert.True(t, style.Alignment.WrapText, "%s should wrap", cell)
	}

	styleID, err := f.GetCellStyle("All Power Plants", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExcelExportOverwrites(t *testing.T) {
	cfg := testConfig(t)

	first, err := NewExcelExporter().Export(testReport(t), cfg)
	require.NoError(t, err)
	second, err := NewExcelExporter().Export(testReport(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	matches, err := filepath.Glob(filepath.Join(cfg.Output.Dir, "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{first}, matches)
}

func TestGetExporters(t *testing.T) {
	tests := []struct {
		formats []string
		want    int
	}{
		{[]string{"excel"}, 1},
		{[]string{"excel", "xlsx", " Excel "}, 1},
		{[]string{"excel", "html", "docx", "json", "yaml", "db"}, 6},
		{[]string{"pdf"}, 0},
	}
	for _, tt := range tests {
		assert.Len(t, GetExporters(tt.formats), tt.want, "%v", tt.formats)
	}

	first := GetExporters([]string{"xlsx", "html"})
	_, ok := first[0].(*ExcelExporter)
	assert.True(t, ok, "request order is kept")
}

func TestCanonicalFormat(t *testing.T) {
	assert.Equal(t, "excel", CanonicalFormat("XLSX"))
	assert.Equal(t, "word", CanonicalFormat("docx"))
	assert.Equal(t, "sqlite", CanonicalFormat("db"))
	assert.Equal(t, "yaml", CanonicalFormat("yml"))
	assert.Equal(t, "", CanonicalFormat("pdf"))
}
