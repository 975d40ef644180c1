package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"plant-report/internal/app"
	"plant-report/internal/config"
	"plant-report/internal/logger"

	"github.com/spf13/cobra"
)

const (
	appName    = "plant-report"
	appVersion = "1.0.0"
	appDesc    = "Clean a European power plant CSV and write a styled multi-sheet Excel report"
)

var (
	configPath string
	inputPath  string
	outputDir  string
	formats    []string
	runDate    string
	verbose    bool
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         appDesc,
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Print()
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	flags.StringVarP(&inputPath, "input", "i", "", "Override input CSV path from config")
	flags.StringVarP(&outputDir, "output", "o", "", "Override output directory from config")
	flags.StringSliceVarP(&formats, "format", "f", nil, "Output formats (excel,html,word,json,yaml,sqlite), repeatable")
	flags.StringVar(&runDate, "date", "", "Run date stamped on output files (YYYY-MM-DD)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")
	flags.BoolVar(&noProgress, "no-progress", false, "Hide progress bars")

	rootCmd.AddCommand(configCmd)
}

// loggedError marks a failure already written to the console by the logger
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

func main() {
	if err := rootCmd.Execute(); err != nil {
		var logged *loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := make(map[string]interface{})
	flags := cmd.Flags()

	if flags.Changed("input") {
		overrides["input.path"] = inputPath
	}
	if flags.Changed("output") {
		overrides["output.dir"] = outputDir
	}
	if flags.Changed("format") {
		var list []string
		for _, f := range formats {
			if f = strings.TrimSpace(f); f != "" {
				list = append(list, f)
			}
		}
		overrides["output.formats"] = list
	}
	if flags.Changed("date") {
		overrides["output.run_date"] = runDate
	}
	if noProgress {
		overrides["output.progress"] = false
	}

	cfg, err := config.LoadWithOverrides(configPath, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Nothing is written until the input is known to exist
	if err := app.CheckInput(cfg); err != nil {
		return err
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	if cfg.Source != "" {
		logger.Debug("Configuration loaded from %s", cfg.Source)
	} else {
		logger.Debug("No configuration file found, using defaults")
	}

	if _, err := app.Run(cfg); err != nil {
		logger.Error("Report failed: %v (see %s)", err, logger.GetLogFilePath())
		return &loggedError{err: err}
	}
	return nil
}
