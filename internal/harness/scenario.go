package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
)

// Scenario defines a migration scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Spaces limits the run to these legacy spaces. Empty means every
	// space in the seeded snapshot.
	Spaces []string `yaml:"spaces,omitempty"`

	// Attributes and Relations seed the legacy snapshot.
	Attributes []ir.AttributeRow `yaml:"attributes,omitempty"`
	Relations  []ir.RelationRow  `yaml:"relations,omitempty"`

	// Assertions validate the emitted ops.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates emitted ops.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Entity is the legacy ID of the subject entity.
	Entity string `yaml:"entity,omitempty"`

	// Attribute is the legacy ID of the value's attribute.
	Attribute string `yaml:"attribute,omitempty"`

	// Value is the expected value (value_equals).
	Value string `yaml:"value,omitempty"`

	// Options are the expected value options (value_options). Keys are
	// "type", "unit", and "language"; unit is a legacy ID.
	Options map[string]string `yaml:"options,omitempty"`

	// RelationType narrows relation_count to one legacy relation type.
	RelationType string `yaml:"relation_type,omitempty"`

	// DataType is the expected property data type (property_data_type).
	DataType string `yaml:"data_type,omitempty"`

	// Count is the expected number (relation_count, degraded_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertValueEquals      = "value_equals"
	AssertValueAbsent      = "value_absent"
	AssertValueOptions     = "value_options"
	AssertRelationCount    = "relation_count"
	AssertPropertyDataType = "property_data_type"
	AssertDegradedCount    = "degraded_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted. A
// non-empty pattern keeps files whose base name without extension matches
// it (filepath.Match syntax).
func FindScenarios(dir, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if pattern != "" {
			name := filepath.Base(path)
			matched, err := filepath.Match(pattern, name[:len(name)-len(ext)])
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Attributes) == 0 && len(s.Relations) == 0 {
		return fmt.Errorf("attributes or relations are required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, row := range s.Attributes {
		if row.ID == "" || row.EntityID == "" || row.SpaceID == "" || row.AttributeID == "" {
			return fmt.Errorf("attributes[%d]: id, entity_id, space_id and attribute_id are required", i)
		}
	}
	for i, row := range s.Relations {
		if row.ID == "" || row.TypeID == "" || row.FromEntityID == "" || row.ToEntityID == "" || row.SpaceID == "" {
			return fmt.Errorf("relations[%d]: id, type_id, from_entity_id, to_entity_id and space_id are required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	needEntity := func() error {
		if a.Entity == "" {
			return fmt.Errorf("assertions[%d]: entity is required for %s", index, a.Type)
		}
		return nil
	}
	needAttribute := func() error {
		if err := needEntity(); err != nil {
			return err
		}
		if a.Attribute == "" {
			return fmt.Errorf("assertions[%d]: attribute is required for %s", index, a.Type)
		}
		return nil
	}

	switch a.Type {
	case AssertValueEquals:
		if err := needAttribute(); err != nil {
			return err
		}
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for value_equals", index)
		}
	case AssertValueAbsent:
		return needAttribute()
	case AssertValueOptions:
		if err := needAttribute(); err != nil {
			return err
		}
		if a.Options == nil {
			return fmt.Errorf("assertions[%d]: options is required for value_options (use {} for none)", index)
		}
	case AssertRelationCount:
		if err := needEntity(); err != nil {
			return err
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for relation_count", index)
		}
	case AssertPropertyDataType:
		if err := needEntity(); err != nil {
			return err
		}
		if _, err := graph.ParseDataType(a.DataType); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertDegradedCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for degraded_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
