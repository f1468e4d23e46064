package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cacheplot/sweep"
	"github.com/inference-sim/cacheplot/sweep/present"
)

var viewID int // 0 = all views

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Emit the hit-rate series of the sweep views",
	Long: "Build the four sweep views (cache size by associativity, cache size by policy, " +
		"block size by policy, associativity by policy) and write their ranked, styled series to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		snap, err := loadSnapshot()
		if err != nil {
			logrus.Fatalf("Failed to load results table: %v", err)
		}
		sheet, err := loadStyles()
		if err != nil {
			logrus.Fatalf("Failed to load style sheet: %v", err)
		}
		if err := writeViews(cmd.OutOrStdout(), snap, sheet, viewID, outputFormat); err != nil {
			logrus.Fatalf("Failed to write views: %v", err)
		}
	},
}

// writeViews renders the selected views of snap to w.
func writeViews(w io.Writer, snap *sweep.Snapshot, sheet *present.StyleSheet, id int, format string) error {
	results, err := selectViews(snap, id)
	if err != nil {
		return err
	}
	for _, r := range results {
		if len(r.Series) == 0 {
			logrus.Warnf("view %d (%s) has no series", r.Spec.ID, r.Spec.Title)
		}
	}
	return writeOutput(w, present.Render(results, sheet), format)
}

func selectViews(snap *sweep.Snapshot, id int) ([]sweep.ViewResult, error) {
	if id == 0 {
		return sweep.BuildAll(snap), nil
	}
	spec, ok := sweep.ViewByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown view %d; valid: 1-%d", id, len(sweep.Views()))
	}
	return []sweep.ViewResult{{Spec: spec, Series: sweep.Build(snap, spec)}}, nil
}

func init() {
	viewsCmd.Flags().IntVar(&viewID, "view", 0, "Emit only this view (1-4); 0 emits all")
	rootCmd.AddCommand(viewsCmd)
}
