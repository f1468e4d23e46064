package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cacheplot/sweep"
	"github.com/inference-sim/cacheplot/sweep/reload"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-emit the views every time the results table changes",
	Long: "Load --table, write its views, then keep watching the file and write a fresh set of views " +
		"after every change. A change that fails to parse is reported and the last good views stand.",
	Run: func(cmd *cobra.Command, args []string) {
		if tablePath == "" {
			logrus.Fatalf("--table is required for watch")
		}
		opts, err := parseOptions()
		if err != nil {
			logrus.Fatalf("Invalid delimiter: %v", err)
		}
		sheet, err := loadStyles()
		if err != nil {
			logrus.Fatalf("Failed to load style sheet: %v", err)
		}
		cache, err := sweep.NewCache(sweep.DefaultCacheSize)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		w, err := reload.New(tablePath, opts, cache)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		err = w.Run(ctx, func(snap *sweep.Snapshot) {
			if err := writeViews(out, snap, sheet, viewID, outputFormat); err != nil {
				logrus.Errorf("Failed to write views for snapshot %s: %v", snap.ID(), err)
			}
		})
		if err != nil {
			logrus.Fatalf("Watch failed: %v", err)
		}
		logrus.Info("Watch stopped.")
	},
}

func init() {
	watchCmd.Flags().IntVar(&viewID, "view", 0, "Emit only this view (1-4); 0 emits all")
	rootCmd.AddCommand(watchCmd)
}
