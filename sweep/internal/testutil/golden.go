// Package testutil provides shared test infrastructure for the sweep packages.
// It holds the golden view expectations for the embedded calibration table
// and small table-building helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenViews represents the structure of testdata/golden_views.json.
type GoldenViews struct {
	Views []GoldenView `json:"views"`
}

// GoldenView is the expected output of one fixed view over the calibration table.
type GoldenView struct {
	ID     int            `json:"id"`
	Title  string         `json:"title"`
	XAxis  string         `json:"x_axis"`
	Series []GoldenSeries `json:"series"`
}

// GoldenSeries is one expected series, in emission order.
type GoldenSeries struct {
	Label  string        `json:"label"`
	Points []GoldenPoint `json:"points"`
}

// GoldenPoint is one expected (x, hit rate) point.
type GoldenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LoadGoldenViews loads the golden views from the testdata directory.
// The path is resolved relative to this source file: sweep/internal/testutil/ → testdata/.
func LoadGoldenViews(t *testing.T) *GoldenViews {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_views.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden views: %v", err)
	}

	var golden GoldenViews
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden views: %v", err)
	}

	return &golden
}

// Header is the canonical results table header row.
const Header = "Policy\tAssociativity\tCacheSize\tBlockSize\tHits\tMisses\tHitRate\tTraceFile"

// Table joins the header and rows into a results table. Rows are written
// with tabs between fields.
func Table(rows ...string) string {
	return Header + "\n" + strings.Join(rows, "\n") + "\n"
}

// AssertFloat64Equal compares two float64 values with absolute tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, tol float64) {
	t.Helper()
	if diff := math.Abs(want - got); diff > tol {
		t.Errorf("%s: got %v, want %v (diff=%v)", name, got, want, diff)
	}
}
