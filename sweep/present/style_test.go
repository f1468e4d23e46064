package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyleSheet_Valid(t *testing.T) {
	assert.NoError(t, DefaultStyleSheet().Validate())
}

func TestLoadStyleSheet_OverridesMergeWithDefaults(t *testing.T) {
	path := writeFile(t, "styles.yaml", `
styles:
  LRU:
    color: "#000000"
    dash: [2, 4]
  RANDOM:
    color: "#abc"
fallback: ["#111111"]
`)

	sheet, err := LoadStyleSheet(path)

	require.NoError(t, err)
	assert.Equal(t, Style{Color: "#000000", Dash: []int{2, 4}}, sheet.Styles["LRU"])
	assert.Equal(t, Style{Color: "#abc"}, sheet.Styles["RANDOM"])
	assert.Equal(t, Style{Color: "#82ca9d"}, sheet.Styles["FIFO"], "untouched label keeps default")
	assert.Equal(t, []string{"#111111"}, sheet.Fallback)
}

func TestLoadStyleSheet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown key", content: "colours:\n  LRU: red\n", wantErr: "parsing style sheet"},
		{name: "bad color", content: "styles:\n  LRU:\n    color: red\n", wantErr: "invalid color"},
		{name: "bad dash", content: "styles:\n  LRU:\n    color: \"#fff\"\n    dash: [0]\n", wantErr: "dash lengths"},
		{name: "bad fallback", content: "fallback: [\"blue\"]\n", wantErr: "fallback[0]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "styles.yaml", tc.content)
			_, err := LoadStyleSheet(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadStyleSheet_MissingFile(t *testing.T) {
	_, err := LoadStyleSheet("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading style sheet")
}

func TestResolve_EmptyFallback(t *testing.T) {
	sheet := &StyleSheet{Styles: map[string]Style{}}
	st, ok := sheet.Resolve("LRU", 3)
	assert.False(t, ok)
	assert.Equal(t, Style{}, st)
}

func TestLoadStyleSheet_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "styles.yaml", "")

	sheet, err := LoadStyleSheet(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultStyleSheet(), sheet)
}
