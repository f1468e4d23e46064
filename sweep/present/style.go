package present

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Style is the display style of one series.
type Style struct {
	Color string `json:"color" yaml:"color"`
	Dash  []int  `json:"dash,omitempty" yaml:"dash,omitempty"` // on/off lengths; empty = solid
}

// StyleSheet maps series labels to styles. Styling by label keeps a series'
// look stable when other groups appear in or disappear from a view.
type StyleSheet struct {
	Styles map[string]Style `yaml:"styles"`
	// Fallback is cycled by rank for labels absent from Styles.
	Fallback []string `yaml:"fallback"`
}

// DefaultStyleSheet is the palette of the hit-rate results page.
func DefaultStyleSheet() *StyleSheet {
	return &StyleSheet{
		Styles: map[string]Style{
			"LRU":                  {Color: "#8884d8"},
			"FIFO":                 {Color: "#82ca9d"},
			"LRU - Direct Mapped":  {Color: "#8884d8"},
			"LRU - 4-way":          {Color: "#82ca9d"},
			"LRU - 256-way":        {Color: "#ffc658"},
			"FIFO - Direct Mapped": {Color: "#4e79a7", Dash: []int{5, 5}},
			"FIFO - 4-way":         {Color: "#e15759", Dash: []int{5, 5}},
			"FIFO - 256-way":       {Color: "#f28e2b", Dash: []int{5, 5}},
		},
		Fallback: []string{"#8884d8", "#82ca9d", "#ffc658", "#4e79a7", "#e15759", "#f28e2b"},
	}
}

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks colors and dash patterns.
func (s *StyleSheet) Validate() error {
	for label, st := range s.Styles {
		if !colorPattern.MatchString(st.Color) {
			return fmt.Errorf("style %q: invalid color %q; want #rgb or #rrggbb", label, st.Color)
		}
		for _, d := range st.Dash {
			if d <= 0 {
				return fmt.Errorf("style %q: dash lengths must be positive, got %v", label, st.Dash)
			}
		}
	}
	for i, c := range s.Fallback {
		if !colorPattern.MatchString(c) {
			return fmt.Errorf("fallback[%d]: invalid color %q", i, c)
		}
	}
	return nil
}

// LoadStyleSheet reads a YAML style sheet. Unrecognized keys are rejected.
// Labels the file does not mention keep their default style, and an empty
// fallback list keeps the default fallback palette.
func LoadStyleSheet(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style sheet: %w", err)
	}
	var loaded StyleSheet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&loaded); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing style sheet: %w", err)
	}

	sheet := DefaultStyleSheet()
	for label, st := range loaded.Styles {
		sheet.Styles[label] = st
	}
	if len(loaded.Fallback) > 0 {
		sheet.Fallback = loaded.Fallback
	}
	if err := sheet.Validate(); err != nil {
		return nil, fmt.Errorf("validating style sheet %s: %w", path, err)
	}
	return sheet, nil
}

// Resolve returns the style for label, falling back to the rank-th fallback
// color. ok is false when the fallback was used.
func (s *StyleSheet) Resolve(label string, rank int) (Style, bool) {
	if st, found := s.Styles[label]; found {
		return st, true
	}
	if len(s.Fallback) == 0 {
		return Style{}, false
	}
	return Style{Color: s.Fallback[rank%len(s.Fallback)]}, false
}
