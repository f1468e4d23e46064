package sweep

import (
	_ "embed"
)

// defaultTable is the calibration results table: swim.trace and gcc.trace
// sweeps for lru and fifo, followed by the single-access read/write traces.
//
//go:embed data/trials.tsv
var defaultTable string

// DefaultTable returns the embedded calibration results table.
func DefaultTable() string {
	return defaultTable
}

// LoadDefault loads the embedded calibration table.
func LoadDefault() (*Snapshot, error) {
	return Load(defaultTable)
}
