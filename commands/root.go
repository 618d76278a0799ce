package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Configuration
	configPath string
	dataDir    string

	rootCmd = &cobra.Command{
		Use:   "go-survey-explorer [command]",
		Short: "Interactive explorer for survey microdata",
		Long: `go-survey-explorer serves two interactive dashboards over survey microdata:
wages by education and occupation (ASEC) and a day in the life of time-use
respondents (ATUS).

Datasets are discovered in the data directory by name (wage*/asec* data,
*dictionary*, timeuse*/atus* data, activities_by_category*) or set in the
config file. CSV, JSON, XLSX and YAML are read, optionally gzipped or zipped,
from local paths or http(s) URLs.

Examples:
  go-survey-explorer detect --dir ./data               # Show which datasets would load
  go-survey-explorer serve --dir ./data --watch        # Serve dashboards, reload on change
  go-survey-explorer explore --dashboard timeuse       # Explore in the terminal
  go-survey-explorer render --dashboard wage --select 2 --out wage.svg`,
		SilenceUsage: true,
	}
)

const defaultLogFile = "~/.go-survey-explorer/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Directory holding the datasets (default \".\")")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup initializes logging and loads the config, applying flag overrides.
func setup(cmd *cobra.Command) (*dashboard.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, path, debug); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)
	}
	config, err := dashboard.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dir") {
		config.DataDir = dataDir
	}
	config.DataDir = expandPath(config.DataDir)
	return config, nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
