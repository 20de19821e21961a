package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios and compares
// its snapshot with the matching golden file.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -run TestScenarios -update
func TestScenarios(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name must match its file name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "assertion failures:\n%s", strings.Join(result.Errors, "\n"))
		})
	}
}

func TestSnapshot_EmptyResult(t *testing.T) {
	data, err := Snapshot("empty", NewResult())
	require.NoError(t, err)
	assert.Equal(t, `{
  "degraded": [],
  "edits": [],
  "scenario": "empty",
  "stats": {
    "degraded": 0,
    "entities": 0,
    "properties": 0,
    "relations": 0,
    "skipped_properties": 0,
    "spaces": 0,
    "values": 0
  }
}
`, string(data))
}
