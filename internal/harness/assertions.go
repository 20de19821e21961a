package harness

import (
	"fmt"
	"maps"
	"strings"

	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
)

// Canonicalizer maps legacy IDs in assertions to canonical IDs.
type Canonicalizer interface {
	Canonicalize(id string) string
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Entity   string // Legacy entity ID, if the assertion has one
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	if e.Entity != "" {
		fmt.Fprintf(&buf, "  Entity: %s\n", e.Entity)
	}
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion, c Canonicalizer) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a, c); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, c Canonicalizer) error {
	switch a.Type {
	case AssertValueEquals:
		return assertValueEquals(result, a, c)
	case AssertValueAbsent:
		return assertValueAbsent(result, a, c)
	case AssertValueOptions:
		return assertValueOptions(result, a, c)
	case AssertRelationCount:
		return assertRelationCount(result, a, c)
	case AssertPropertyDataType:
		return assertPropertyDataType(result, a, c)
	case AssertDegradedCount:
		return assertDegradedCount(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// findValues returns the values emitted for (entity, attribute) across
// every CreateEntity op of the entity.
func findValues(result *Result, entity, attribute string) []ir.ValueEntry {
	var out []ir.ValueEntry
	for _, op := range result.Ops() {
		ce, ok := op.(graph.CreateEntity)
		if !ok || ce.ID != entity {
			continue
		}
		for _, v := range ce.Values {
			if v.Property == attribute {
				out = append(out, v)
			}
		}
	}
	return out
}

func assertValueEquals(result *Result, a Assertion, c Canonicalizer) error {
	values := findValues(result, c.Canonicalize(a.Entity), c.Canonicalize(a.Attribute))
	for _, v := range values {
		if v.Value == a.Value {
			return nil
		}
	}

	actual := "no value"
	if len(values) > 0 {
		got := make([]string, len(values))
		for i, v := range values {
			got[i] = fmt.Sprintf("%q", v.Value)
		}
		actual = strings.Join(got, ", ")
	}
	return &AssertionError{
		Type:     AssertValueEquals,
		Expected: fmt.Sprintf("%s = %q", a.Attribute, a.Value),
		Actual:   actual,
		Entity:   a.Entity,
	}
}

func assertValueAbsent(result *Result, a Assertion, c Canonicalizer) error {
	values := findValues(result, c.Canonicalize(a.Entity), c.Canonicalize(a.Attribute))
	if len(values) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertValueAbsent,
		Expected: fmt.Sprintf("no value for %s", a.Attribute),
		Actual:   fmt.Sprintf("%q", values[0].Value),
		Entity:   a.Entity,
	}
}

func assertValueOptions(result *Result, a Assertion, c Canonicalizer) error {
	values := findValues(result, c.Canonicalize(a.Entity), c.Canonicalize(a.Attribute))
	if len(values) == 0 {
		return &AssertionError{
			Type:     AssertValueOptions,
			Expected: fmt.Sprintf("value for %s", a.Attribute),
			Actual:   "no value",
			Entity:   a.Entity,
		}
	}

	want := make(map[string]string, len(a.Options))
	for k, v := range a.Options {
		if k == "unit" {
			v = c.Canonicalize(v)
		}
		want[k] = v
	}
	got := optionsMap(values[0].Options)
	if maps.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     AssertValueOptions,
		Expected: fmt.Sprintf("options %v", want),
		Actual:   fmt.Sprintf("options %v", got),
		Entity:   a.Entity,
	}
}

func optionsMap(o *ir.ValueOptions) map[string]string {
	out := map[string]string{}
	if o == nil {
		return out
	}
	out["type"] = o.Kind.String()
	if o.Unit != "" {
		out["unit"] = o.Unit
	}
	if o.Language != "" {
		out["language"] = o.Language
	}
	return out
}

func assertRelationCount(result *Result, a Assertion, c Canonicalizer) error {
	from := c.Canonicalize(a.Entity)
	relType := ""
	if a.RelationType != "" {
		relType = c.Canonicalize(a.RelationType)
	}

	count := 0
	for _, op := range result.Ops() {
		rel, ok := op.(graph.CreateRelation)
		if !ok || rel.FromEntity != from {
			continue
		}
		if relType != "" && rel.Type != relType {
			continue
		}
		count++
	}
	if count == a.Count {
		return nil
	}

	expected := fmt.Sprintf("%d relations", a.Count)
	if a.RelationType != "" {
		expected = fmt.Sprintf("%d relations of type %s", a.Count, a.RelationType)
	}
	return &AssertionError{
		Type:     AssertRelationCount,
		Expected: expected,
		Actual:   fmt.Sprintf("%d relations", count),
		Entity:   a.Entity,
	}
}

func assertPropertyDataType(result *Result, a Assertion, c Canonicalizer) error {
	id := c.Canonicalize(a.Entity)
	for _, op := range result.Ops() {
		if p, ok := op.(graph.CreateProperty); ok && p.ID == id {
			if string(p.DataType) == a.DataType {
				return nil
			}
			return &AssertionError{
				Type:     AssertPropertyDataType,
				Expected: a.DataType,
				Actual:   string(p.DataType),
				Entity:   a.Entity,
			}
		}
	}
	return &AssertionError{
		Type:     AssertPropertyDataType,
		Expected: a.DataType,
		Actual:   "not declared a property",
		Entity:   a.Entity,
	}
}

func assertDegradedCount(result *Result, a Assertion) error {
	if len(result.Degraded) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertDegradedCount,
		Expected: fmt.Sprintf("%d degraded values", a.Count),
		Actual:   fmt.Sprintf("%d degraded values", len(result.Degraded)),
	}
}
