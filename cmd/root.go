package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Flags shared by every subcommand
	logLevel     string // Log verbosity level
	tablePath    string // Results table file; empty = embedded calibration table
	delimiter    string // Column delimiter of the results table
	stylesPath   string // YAML style sheet; empty = default palette
	outputFormat string // Output encoding: json or yaml
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cacheplot",
	Short: "Derive hit-rate plot series from cache simulation results",
	Long: "Parse a table of cache simulation trials (policy, associativity, cache size, block size, " +
		"hits, misses, hit rate, trace file) and emit the hit-rate series of the four sweep views.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := applyEnv(cmd); err != nil {
			logrus.Fatalf("Invalid environment configuration: %v", err)
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	loadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags shared by all subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&tablePath, "table", "", "Path to the results table (default: embedded calibration table)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "tab", "Column delimiter: tab, comma, or a single character")
	rootCmd.PersistentFlags().StringVar(&stylesPath, "styles", "", "Path to a YAML style sheet mapping series labels to colors")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "json", "Output format (json, yaml)")
}
