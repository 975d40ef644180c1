package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"plant-report/internal/model"
)

// invalidSheetChars may not appear in a worksheet title
const invalidSheetChars = `[]:*?/\`

// DateLayout is the layout of run dates in config files and file names
const DateLayout = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`

	// RunDate stamps the output file names. Resolved from output.run_date or today.
	RunDate time.Time `mapstructure:"-"`

	// Source is the config file that was read, empty when defaults were used
	Source string `mapstructure:"-"`
}

// InputConfig holds CSV input settings
type InputConfig struct {
	Path            string   `mapstructure:"path" validate:"required"`                       // CSV file to read
	Encoding        []string `mapstructure:"encoding" validate:"min=1"`                      // Encoding hints, tried after UTF-8
	NAValues        []string `mapstructure:"na_values"`                                      // Cell values treated as missing
	ExpectedColumns []string `mapstructure:"expected_columns"`                               // Columns the header must contain
	RequiredFields  []string `mapstructure:"required_fields" validate:"min=1,dive,required"` // Rows missing any of these are dropped
	NumericColumns  []string `mapstructure:"numeric_columns"`                                // Columns coerced to numbers
	CapacityColumn  string   `mapstructure:"capacity_column" validate:"required"`            // Column summed by the analyzer
}

// GroupConfig pairs a grouping column with the sheet title of its summary
type GroupConfig struct {
	Column string `mapstructure:"column" validate:"required"`
	Sheet  string `mapstructure:"sheet" validate:"required,max=31"`
}

// AnalysisConfig holds aggregation settings
type AnalysisConfig struct {
	Groups       []GroupConfig `mapstructure:"groups" validate:"min=1,dive"`
	MissingKey   string        `mapstructure:"missing_key" validate:"oneof=bucket drop"` // What to do with rows whose group key is missing
	MissingLabel string        `mapstructure:"missing_label"`                            // Key used when MissingKey is "bucket"
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string   `mapstructure:"dir" validate:"required"`                                                               // Output directory
	FilePrefix string   `mapstructure:"file_prefix" validate:"required"`                                                       // File name before the date
	Formats    []string `mapstructure:"formats" validate:"min=1,dive,oneof=excel xlsx html word docx json yaml yml sqlite db"` // Report formats
	RunDate    string   `mapstructure:"run_date"`                                                                              // Fixed run date (YYYY-MM-DD), empty for today
	Progress   bool     `mapstructure:"progress"`                                                                              // Show progress bars on stderr
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// If the file doesn't exist, defaults are used and Source stays empty
func Load(configPath string) (*Config, error) {
	return LoadWithOverrides(configPath, nil)
}

// LoadWithOverrides is Load with values (keyed like "output.dir") that take
// precedence over the file, e.g. from command-line flags
func LoadWithOverrides(configPath string, overrides map[string]interface{}) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	source := ""
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		source = v.ConfigFileUsed()
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = source

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Finalize resolves derived fields, validates and prepares the output directory.
// Call it again after changing fields (e.g. from command-line overrides).
func (c *Config) Finalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.resolveRunDate(); err != nil {
		return err
	}
	return c.Validate()
}

// isNotFound reports whether viper failed only because the file is absent
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "no such file") || strings.Contains(msg, "cannot find")
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.path", "./data/conventional_power_plants_EU.csv")
	v.SetDefault("input.encoding", []string{"utf-8", "windows-1252"})
	v.SetDefault("input.na_values", DefaultNAValues())
	v.SetDefault("input.expected_columns", []string{
		"country",
		"capacity",
		"energy_source",
		"name",
		"technology",
		"commissioned",
	})
	v.SetDefault("input.required_fields", []string{"country", "capacity", "energy_source"})
	v.SetDefault("input.numeric_columns", []string{"commissioned"})
	v.SetDefault("input.capacity_column", "capacity")

	// Analysis defaults
	v.SetDefault("analysis.groups", []map[string]string{
		{"column": "country", "sheet": "Summary by Country"},
		{"column": "energy_source", "sheet": "Summary by Energy Source"},
		{"column": "technology", "sheet": "Summary by Technology"},
	})
	v.SetDefault("analysis.missing_key", "bucket")
	v.SetDefault("analysis.missing_label", "Unknown")

	// Output defaults
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_prefix", "PowerPlants_Report")
	v.SetDefault("output.formats", []string{"excel"})
	v.SetDefault("output.run_date", "")
	v.SetDefault("output.progress", true)
}

// DefaultNAValues lists the cell values read as missing by default
func DefaultNAValues() []string {
	return []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null",
	}
}

// Default returns the configuration used when no file is present,
// without touching the filesystem
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absInput, err := filepath.Abs(c.Input.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve input.path: %w", err)
	}
	c.Input.Path = absInput

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// resolveRunDate parses output.run_date, falling back to today
func (c *Config) resolveRunDate() error {
	if c.Output.RunDate == "" {
		if c.RunDate.IsZero() {
			c.RunDate = time.Now()
		}
		return nil
	}
	d, err := time.ParseInLocation(DateLayout, c.Output.RunDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid output.run_date %q: %w", c.Output.RunDate, err)
	}
	c.RunDate = d
	return nil
}

// OutputPath returns the report path for a file extension, e.g.
// <dir>/PowerPlants_Report_2024-01-31.xlsx for ".xlsx"
func (c *Config) OutputPath(ext string) string {
	name := fmt.Sprintf("%s_%s%s", c.Output.FilePrefix, c.RunDate.Format(DateLayout), ext)
	return filepath.Join(c.Output.Dir, name)
}

// GetOutputPath returns the full path for the output Excel file
func (c *Config) GetOutputPath() string {
	return c.OutputPath(".xlsx")
}

// LogPath returns the path of the run log
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "plant_report.log")
}

var validate = validator.New()

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seen := make(map[string]bool)
	for _, g := range c.Analysis.Groups {
		if seen[g.Sheet] {
			return fmt.Errorf("invalid configuration: duplicate sheet title %q", g.Sheet)
		}
		seen[g.Sheet] = true

		if strings.ContainsAny(g.Sheet, invalidSheetChars) {
			return fmt.Errorf("invalid configuration: sheet title %q contains one of %s", g.Sheet, invalidSheetChars)
		}
		if name := model.TableName(g.Sheet + "Table"); !model.ValidTableName(name) {
			return fmt.Errorf("invalid configuration: sheet title %q gives invalid table name %q", g.Sheet, name)
		}
	}

	if c.Analysis.MissingKey == "bucket" && c.Analysis.MissingLabel == "" {
		return fmt.Errorf("invalid configuration: analysis.missing_label cannot be empty when missing_key is bucket")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Plant Report Configuration ===")
	fmt.Printf("Input File:       %s\n", c.Input.Path)
	fmt.Printf("Encoding Hints:   %v\n", c.Input.Encoding)
	fmt.Printf("Required Fields:  %v\n", c.Input.RequiredFields)
	fmt.Printf("Numeric Columns:  %v\n", c.Input.NumericColumns)
	for _, g := range c.Analysis.Groups {
		fmt.Printf("Group:            %s -> %s\n", g.Column, g.Sheet)
	}
	fmt.Printf("Missing Keys:     %s (%s)\n", c.Analysis.MissingKey, c.Analysis.MissingLabel)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output File:      %s\n", c.GetOutputPath())
	fmt.Printf("Formats:          %v\n", c.Output.Formats)
	fmt.Println("==================================")
}
