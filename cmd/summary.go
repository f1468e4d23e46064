package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cacheplot/sweep"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Report record counts and hit-rate diagnostics for a results table",
	Run: func(cmd *cobra.Command, args []string) {
		snap, err := loadSnapshot()
		if err != nil {
			logrus.Fatalf("Failed to load results table: %v", err)
		}
		summary := sweep.Summarize(snap)
		if len(summary.UnknownPolicies) > 0 {
			logrus.Warnf("table uses policies outside lru/fifo: %v", summary.UnknownPolicies)
		}
		if err := writeOutput(cmd.OutOrStdout(), summary, outputFormat); err != nil {
			logrus.Fatalf("Failed to write summary: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
