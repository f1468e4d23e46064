// Package sweep turns a table of cache-simulation trial results into
// plot-ready hit-rate series.
//
// # Reading Guide
//
//   - record.go: TrialRecord, Policy and the Field column registry
//   - parse.go: Parse / ParseWith and ParseError
//   - snapshot.go: Load, the immutable record store
//   - view.go: the shared filter/group/sort algorithm and the four fixed views
//
// # Pipeline
//
// Text is parsed into records, wrapped in a Snapshot, and every ViewSpec is
// run over the Snapshot by Build. A ViewSpec is pure data (predicates, group
// fields, x-axis field, label function), so all four views share one
// algorithm. Rows from single-access traces (read01.trace, write01.trace, ...)
// never reach a view.
//
// Sub-packages:
//   - sweep/present/: ranks series and resolves their display style by label
//   - sweep/reload/: re-loads a table file when it changes on disk
package sweep
