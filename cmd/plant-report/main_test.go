package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"plant-report/internal/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plantsCSV = `name,country,capacity,energy_source,technology,commissioned
A,DE,100,Coal,Steam turbine,1975
B,DE,50,Gas,,1990
C,FR,200,Coal,Steam turbine,unknown
`

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRootCommandWritesReports(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plants.csv")
	require.NoError(t, os.WriteFile(input, []byte(plantsCSV), 0644))
	out := filepath.Join(dir, "out")

	err := execute(t,
		"--config", filepath.Join(dir, "missing.yaml"),
		"-i", input,
		"-o", out,
		"--date", "2024-01-31",
		"-f", "excel", "-f", "json",
		"--no-progress",
	)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "PowerPlants_Report_2024-01-31.xlsx"))
	assert.FileExists(t, filepath.Join(out, "PowerPlants_Report_2024-01-31.json"))
	assert.FileExists(t, filepath.Join(out, "plant_report.log"))
}

func TestRootCommandMissingInput(t *testing.T) {
	dir := t.TempDir()

	err := execute(t,
		"--config", filepath.Join(dir, "missing.yaml"),
		"-i", filepath.Join(dir, "nope.csv"),
		"-o", filepath.Join(dir, "out"),
		"--date", "2024-01-31",
		"--no-progress",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	assert.NoDirExists(t, filepath.Join(dir, "out"), "no output before the input is found")
}

func TestRootCommandLogsRunFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(input, nil, 0644))
	out := filepath.Join(dir, "out")

	err := execute(t,
		"--config", filepath.Join(dir, "missing.yaml"),
		"-i", input,
		"-o", out,
		"--date", "2024-01-31",
		"--no-progress",
	)
	require.Error(t, err)

	var logged *loggedError
	assert.True(t, errors.As(err, &logged), "run failures are reported by the logger")
	assert.ErrorIs(t, err, loader.ErrNoData)

	content, readErr := os.ReadFile(filepath.Join(out, "plant_report.log"))
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "[ERROR]")
	assert.Contains(t, string(content), "Report failed")
}

func TestConfigCommandWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	require.NoError(t, execute(t,
		"config",
		"--config", filepath.Join(dir, "missing.yaml"),
		"-o", out,
		"--date", "2024-01-31",
	))
	assert.NoDirExists(t, out)
}

func TestRootCommandRejectsBadDate(t *testing.T) {
	dir := t.TempDir()

	err := execute(t,
		"--config", filepath.Join(dir, "missing.yaml"),
		"-o", filepath.Join(dir, "out"),
		"--date", "31/01/2024",
	)
	assert.ErrorContains(t, err, "run_date")
}

func TestVersionFlag(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, execute(t, "--version"))
	assert.Contains(t, buf.String(), appVersion)
}
