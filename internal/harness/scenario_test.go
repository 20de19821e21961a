package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/ir"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/entity_values.yaml")
	require.NoError(t, err)

	assert.Equal(t, "entity_values", s.Name)
	require.Len(t, s.Attributes, 6)
	assert.Equal(t, ir.KindText, s.Attributes[0].ValueType)
	assert.Equal(t, "en", s.Attributes[0].LanguageOption)
	require.NotNil(t, s.Attributes[1].NumberValue)
	assert.Equal(t, 42.5, *s.Attributes[1].NumberValue)
	require.NotNil(t, s.Attributes[3].BooleanValue)
	assert.True(t, *s.Attributes[3].BooleanValue)
	require.Len(t, s.Relations, 3)
	assert.Equal(t, "ETLCku7ZPvqysA9sHDw58K", s.Relations[2].ToSpaceID)
	assert.Equal(t, map[string]string{"type": "text", "language": "en"}, s.Assertions[1].Options)
	assert.Equal(t, map[string]string{}, s.Assertions[5].Options)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Errors(t *testing.T) {
	const rows = `
attributes:
  - {id: p1, entity_id: e, space_id: s, attribute_id: a, text_value: x}
`
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", ``, "empty document"},
		{"unknown field", "name: x\ndescription: y\nassertion: []\n", "field assertion not found"},
		{"missing name", "description: y\n" + rows, "name is required"},
		{"missing description", "name: x\n" + rows, "description is required"},
		{"no rows", "name: x\ndescription: y\nassertions: [{type: degraded_count}]\n", "attributes or relations are required"},
		{"no assertions", "name: x\ndescription: y\n" + rows, "assertions list is required"},
		{
			"incomplete row",
			"name: x\ndescription: y\nattributes: [{id: p1}]\nassertions: [{type: degraded_count}]\n",
			"attributes[0]: id, entity_id, space_id and attribute_id are required",
		},
		{
			"incomplete relation",
			"name: x\ndescription: y\nrelations: [{id: r1, type_id: t}]\nassertions: [{type: degraded_count}]\n",
			"relations[0]:",
		},
		{"unknown assertion", "name: x\ndescription: y\n" + rows + "assertions: [{type: nope}]\n", `unknown assertion type "nope"`},
		{"missing entity", "name: x\ndescription: y\n" + rows + "assertions: [{type: relation_count}]\n", "entity is required for relation_count"},
		{"missing attribute", "name: x\ndescription: y\n" + rows + "assertions: [{type: value_absent, entity: e}]\n", "attribute is required for value_absent"},
		{"missing value", "name: x\ndescription: y\n" + rows + "assertions: [{type: value_equals, entity: e, attribute: a}]\n", "value is required"},
		{"missing options", "name: x\ndescription: y\n" + rows + "assertions: [{type: value_options, entity: e, attribute: a}]\n", "options is required"},
		{"bad data type", "name: x\ndescription: y\n" + rows + "assertions: [{type: property_data_type, entity: e, data_type: STRING}]\n", `unknown data type "STRING"`},
		{"negative count", "name: x\ndescription: y\n" + rows + "assertions: [{type: degraded_count, count: -1}]\n", "count must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "c.txt", filepath.Join("sub", "d.yaml")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
	}

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "sub", "d.yaml"),
	}, files)

	files, err = FindScenarios(dir, "[ab]")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = FindScenarios(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
