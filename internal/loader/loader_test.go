package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plant-report/internal/config"
	"plant-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func defaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

func parse(t *testing.T, csvText string) *Result {
	t.Helper()
	res, err := Parse(strings.NewReader(csvText), "test.csv", defaultOptions())
	require.NoError(t, err)
	return res
}

func cell(t *testing.T, tbl *model.Table, row int, column string) model.Value {
	t.Helper()
	idx := tbl.Index(column)
	require.GreaterOrEqual(t, idx, 0, "column %s", column)
	return tbl.Rows[row][idx]
}

func TestParseTrimsHeaderAndKeepsOrder(t *testing.T) {
	res := parse(t, " name , country,capacity ,energy_source,technology,commissioned,extra\n"+
		"A,DE,100,Coal,Steam turbine,1975,x\n")

	assert.Equal(t, []string{"name", "country", "capacity", "energy_source", "technology", "commissioned", "extra"}, res.Table.Columns)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, model.String("A"), cell(t, res.Table, 0, "name"))
	assert.Equal(t, model.Number(100), cell(t, res.Table, 0, "capacity"))
	assert.Equal(t, model.Number(1975), cell(t, res.Table, 0, "commissioned"))
}

func TestParseDropsRowsMissingRequiredFields(t *testing.T) {
	input := `name,country,capacity,energy_source,technology,commissioned
A,DE,100,Coal,Steam turbine,1975
B,,50,Gas,,1990
C,FR,,Coal,,1980
D,FR,200,,,1985
E,IT,NaN,Oil,,1970
F,ES,lots,Oil,,1970
G,  ,10,Oil,,1970
H,PL,75.5,Lignite,,2001
`
	res := parse(t, input)

	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "A", cell(t, res.Table, 0, "name").Text())
	assert.Equal(t, "H", cell(t, res.Table, 1, "name").Text())

	assert.Equal(t, 8, res.Stats.RowsRead)
	assert.Equal(t, 2, res.Stats.RowsKept)
	assert.Equal(t, 6, res.Stats.RowsDropped)

	var reasons []string
	for _, issue := range res.Stats.Issues {
		assert.True(t, issue.Dropped)
		reasons = append(reasons, issue.Reason)
	}
	assert.Contains(t, reasons, "missing country")
	assert.Contains(t, reasons, "missing capacity")
	assert.Contains(t, reasons, "missing energy_source")
	assert.Contains(t, reasons, `capacity "lots" is not numeric`)

	// Line numbers count the header as line 1
	assert.Equal(t, 3, res.Stats.Issues[0].Line)
}

func TestParseCoercesCommissioned(t *testing.T) {
	input := `name,country,capacity,energy_source,technology,commissioned
A,DE,100,Coal,,unknown
B,DE,50,Gas,,
C,FR,200,Coal,,1999
`
	res := parse(t, input)

	require.Equal(t, 3, res.Table.Len(), "rows with a bad commissioned value are kept")
	assert.True(t, cell(t, res.Table, 0, "commissioned").IsMissing())
	assert.True(t, cell(t, res.Table, 1, "commissioned").IsMissing())
	assert.Equal(t, model.Number(1999), cell(t, res.Table, 2, "commissioned"))

	assert.Equal(t, 1, res.Stats.CellsCoerced)
	require.Len(t, res.Stats.Issues, 1)
	assert.False(t, res.Stats.Issues[0].Dropped)
	assert.Equal(t, 2, res.Stats.Issues[0].Line)
}

func TestParseInfersColumnTypes(t *testing.T) {
	input := `name,country,capacity,energy_source,technology,commissioned,lat,code
A,DE,100,Coal,,1975,52.5,001
B,DE,50,Gas,CCGT,1990,,X2
`
	res := parse(t, input)

	assert.Equal(t, model.Number(52.5), cell(t, res.Table, 0, "lat"))
	assert.True(t, cell(t, res.Table, 1, "lat").IsMissing())
	assert.Equal(t, model.String("001"), cell(t, res.Table, 0, "code"), "mixed columns stay text")
	assert.True(t, cell(t, res.Table, 0, "technology").IsMissing())
	assert.Equal(t, model.String("CCGT"), cell(t, res.Table, 1, "technology"))
}

func TestParsePadsShortRows(t *testing.T) {
	res := parse(t, "country,capacity,energy_source,name,technology,commissioned\nDE,100,Coal\n")

	require.Equal(t, 1, res.Table.Len())
	assert.True(t, cell(t, res.Table, 0, "name").IsMissing())
	assert.True(t, cell(t, res.Table, 0, "commissioned").IsMissing())
}

func TestParseNormalizesBlankAndDuplicateHeaders(t *testing.T) {
	res := parse(t, "country,capacity,energy_source,name,technology,commissioned,,name\nDE,1,Coal,A,,,x,y\n")

	assert.Equal(t, []string{
		"country", "capacity", "energy_source", "name", "technology", "commissioned", "Unnamed: 6", "name.1",
	}, res.Table.Columns)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		line   int
	}{
		{"empty input", "", ErrNoData, 0},
		{"missing columns", "country,capacity\nDE,1\n", ErrMissingColumn, 1},
		{"ragged row", "country,capacity,energy_source,name,technology,commissioned\nDE,1,Coal,A,B,1990,extra\n", ErrRaggedRow, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.csv", defaultOptions())
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, "bad.csv", pe.Path)
		})
	}
}

func TestParseKeepsStrayQuotes(t *testing.T) {
	input := `name,country,capacity,energy_source,technology,commissioned
Plant 5" unit,DE,100,Coal,,1975
"Quoted, Name",FR,50,Gas,,1990
`
	res := parse(t, input)

	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, `Plant 5" unit`, cell(t, res.Table, 0, "name").Text())
	assert.Equal(t, model.Number(100), cell(t, res.Table, 0, "capacity"))
	assert.Equal(t, "Quoted, Name", cell(t, res.Table, 1, "name").Text())
	assert.Zero(t, res.Stats.RowsDropped)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), defaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing input must be reported as not found: %v", err)
}

func TestLoadDecodesLegacyEncoding(t *testing.T) {
	text := "country,capacity,energy_source,name,technology,commissioned\nDE,100,Coal,Kraftwerk Jänschwalde,,1976\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(text)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plants.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0644))

	res, err := Load(path, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "windows-1252", res.Stats.Encoding)
	assert.Equal(t, "Kraftwerk Jänschwalde", cell(t, res.Table, 0, "name").Text())
}

func TestLoadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.csv")
	content := "\ufeffcountry,capacity,energy_source,name,technology,commissioned\nDE,1,Coal,A,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	res, err := Load(path, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "country", res.Table.Columns[0])
	assert.Equal(t, "utf-8", res.Stats.Encoding)
}

func TestDecodeWithoutUsableHint(t *testing.T) {
	_, _, err := Decode([]byte{0xff, 0xfe, 0x00, 0xc3}, []string{"utf-8", "no-such-charset"})
	assert.ErrorIs(t, err, ErrEncoding)
}
