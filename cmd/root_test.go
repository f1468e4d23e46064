package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cacheplot/sweep"
	"github.com/inference-sim/cacheplot/sweep/present"
)

func TestWriteViews_AllViews_JSON(t *testing.T) {
	// GIVEN the embedded calibration table
	snap, err := sweep.LoadDefault()
	require.NoError(t, err)

	// WHEN all views are written as JSON
	var buf bytes.Buffer
	require.NoError(t, writeViews(&buf, snap, present.DefaultStyleSheet(), 0, "json"))

	// THEN the renderer contract is on the output
	var views []present.PlotView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &views))
	require.Len(t, views, 4)
	assert.Equal(t, []string{"LRU", "FIFO"}, []string{views[1].Series[0].Label, views[1].Series[1].Label})
	assert.Contains(t, views[1].Series[0].Points, sweep.Point{X: 16384, Y: 98.77})
	assert.Equal(t, "#82ca9d", views[1].Series[1].Style.Color)
}

func TestWriteViews_SingleView_YAML(t *testing.T) {
	snap, err := sweep.LoadDefault()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeViews(&buf, snap, nil, 4, "yaml"))

	var views []present.PlotView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, 4, views[0].ID)
	assert.Equal(t, "Associativity", views[0].XAxis)
	assert.Nil(t, views[0].Series[0].Style)
}

func TestWriteViews_UnknownView(t *testing.T) {
	snap, err := sweep.LoadDefault()
	require.NoError(t, err)

	err = writeViews(&bytes.Buffer{}, snap, nil, 7, "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view 7")
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	err := writeOutput(&bytes.Buffer{}, struct{}{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadSnapshot_FromFile_CommaDelimited(t *testing.T) {
	// GIVEN a CSV table on disk
	path := filepath.Join(t.TempDir(), "all_results.csv")
	content := "Policy,Associativity,CacheSize,BlockSize,Hits,Misses,HitRate,TraceFile\n" +
		"lru,4,16384,64,299449,3744,98.77,swim.trace\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	defer restoreGlobals()()
	tablePath, delimiter = path, "comma"

	// WHEN loaded through the CLI configuration
	snap, err := loadSnapshot()

	// THEN the record is parsed with the comma delimiter
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, 98.77, snap.At(0).HitRate)
}

func TestLoadSnapshot_DefaultTable_IgnoresDelimiter(t *testing.T) {
	defer restoreGlobals()()
	tablePath, delimiter = "", "comma"

	snap, err := loadSnapshot()

	require.NoError(t, err)
	assert.Equal(t, 84, snap.Len())
}

func TestLoadSnapshot_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tsv")
	require.NoError(t, os.WriteFile(path, []byte("Policy\tHits\nlru\t1\n"), 0o644))

	defer restoreGlobals()()
	tablePath, delimiter = path, "tab"

	_, err := loadSnapshot()

	var perr *sweep.ParseError
	assert.ErrorAs(t, err, &perr)
}

// restoreGlobals snapshots the flag variables and returns a func restoring them.
func restoreGlobals() func() {
	saved := []string{logLevel, tablePath, delimiter, stylesPath, outputFormat}
	savedView := viewID
	return func() {
		logLevel, tablePath, delimiter, stylesPath, outputFormat = saved[0], saved[1], saved[2], saved[3], saved[4]
		viewID = savedView
	}
}
