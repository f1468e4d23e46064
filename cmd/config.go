package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cacheplot/sweep"
	"github.com/inference-sim/cacheplot/sweep/present"
)

// envBindings maps persistent flag names to the environment variables that
// supply their value when the flag is not given on the command line.
var envBindings = []struct {
	flag string
	env  string
}{
	{"log", "CACHEPLOT_LOG_LEVEL"},
	{"table", "CACHEPLOT_TABLE"},
	{"delimiter", "CACHEPLOT_DELIMITER"},
	{"styles", "CACHEPLOT_STYLES"},
	{"format", "CACHEPLOT_FORMAT"},
}

// loadDotEnv reads an optional .env file from the working directory.
// Variables already set in the process environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("ignoring .env: %v", err)
	}
}

// applyEnv fills every unset flag from its environment variable. Flags given
// explicitly are left alone (callers must not overwrite user-provided values).
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for _, b := range envBindings {
		f := flags.Lookup(b.flag)
		if f == nil || flags.Changed(b.flag) {
			continue
		}
		v, ok := os.LookupEnv(b.env)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := f.Value.Set(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		logrus.Debugf("--%s taken from %s", b.flag, b.env)
	}
	return nil
}

// parseDelimiter accepts "tab", "comma", an escaped "\t", or any single character.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be tab, comma or a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || r == '\r' {
		return 0, fmt.Errorf("delimiter must not be a line break")
	}
	return r, nil
}

// loadSnapshot loads --table, or the embedded calibration table when unset.
func loadSnapshot() (*sweep.Snapshot, error) {
	opts, err := parseOptions()
	if err != nil {
		return nil, err
	}
	if tablePath == "" {
		logrus.Infof("no --table given; using the embedded calibration table")
		return sweep.LoadWith(sweep.DefaultTable(), opts)
	}
	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("reading results table: %w", err)
	}
	snap, err := sweep.LoadWith(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", tablePath, err)
	}
	logrus.Infof("loaded %s: %d records (snapshot %s)", tablePath, snap.Len(), snap.ID())
	return snap, nil
}

func parseOptions() (sweep.ParseOptions, error) {
	d, err := parseDelimiter(delimiter)
	if err != nil {
		return sweep.ParseOptions{}, err
	}
	// The embedded table is always tab-separated.
	if tablePath == "" {
		d = sweep.DefaultDelimiter
	}
	return sweep.ParseOptions{Delimiter: d}, nil
}

// loadStyles loads --styles, or the default palette when unset.
func loadStyles() (*present.StyleSheet, error) {
	if stylesPath == "" {
		return present.DefaultStyleSheet(), nil
	}
	return present.LoadStyleSheet(stylesPath)
}
