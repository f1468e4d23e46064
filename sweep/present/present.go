// Package present adapts built series for a rendering collaborator: it fixes
// each series' rank and resolves its display style by label.
package present

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cacheplot/sweep"
)

// RankedSeries is a series as handed to the renderer.
type RankedSeries struct {
	Label  string        `json:"label" yaml:"label"`
	Rank   int           `json:"rank" yaml:"rank"`
	Points []sweep.Point `json:"points" yaml:"points"`
	Style  *Style        `json:"style,omitempty" yaml:"style,omitempty"`
}

// PlotView is one chart's worth of output.
type PlotView struct {
	ID     int            `json:"id" yaml:"id"`
	Title  string         `json:"title" yaml:"title"`
	XAxis  string         `json:"x_axis" yaml:"x_axis"`
	Series []RankedSeries `json:"series" yaml:"series"`
}

// Rank assigns every series its list position as rank. Order and membership
// are unchanged.
func Rank(series []sweep.Series) []RankedSeries {
	out := make([]RankedSeries, len(series))
	for i, s := range series {
		pts := make([]sweep.Point, len(s.Points))
		copy(pts, s.Points)
		out[i] = RankedSeries{Label: s.Label, Rank: i, Points: pts}
	}
	return out
}

// Apply resolves the style of every ranked series through sheet, in place.
// A nil sheet leaves styles unset.
func Apply(ranked []RankedSeries, sheet *StyleSheet) {
	if sheet == nil {
		return
	}
	for i := range ranked {
		st, ok := sheet.Resolve(ranked[i].Label, ranked[i].Rank)
		if !ok {
			logrus.Debugf("no style for series %q; using fallback color %q", ranked[i].Label, st.Color)
		}
		st.Dash = append([]int(nil), st.Dash...)
		ranked[i].Style = &st
	}
}

// Render ranks and styles every view result.
func Render(results []sweep.ViewResult, sheet *StyleSheet) []PlotView {
	views := make([]PlotView, 0, len(results))
	for _, r := range results {
		ranked := Rank(r.Series)
		Apply(ranked, sheet)
		views = append(views, PlotView{
			ID:     r.Spec.ID,
			Title:  r.Spec.Title,
			XAxis:  r.Spec.XAxis.Column(),
			Series: ranked,
		})
	}
	return views
}
