package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
)

// Snapshot encodes a result as indented canonical JSON:
//
//	{
//	  "scenario": name,
//	  "edits": [{"space": ..., "ops": [...]}],
//	  "degraded": [{"entity", "attribute", "translator"}],
//	  "stats": {...}
//	}
//
// Checksums are left out so that a golden file only changes when the ops
// it shows change.
func Snapshot(name string, result *Result) ([]byte, error) {
	edits := make(ir.IRArray, len(result.Edits))
	for i, e := range result.Edits {
		edits[i] = ir.IRObject{
			"space": ir.IRString(e.SpaceID),
			"ops":   graph.EncodeOps(e.Ops),
		}
	}

	degraded := make(ir.IRArray, len(result.Degraded))
	for i, d := range result.Degraded {
		degraded[i] = ir.IRObject{
			"entity":     ir.IRString(d.EntityID),
			"attribute":  ir.IRString(d.AttributeID),
			"translator": ir.IRString(d.Translator.String()),
		}
	}

	s := result.Stats
	snapshot := ir.IRObject{
		"scenario": ir.IRString(name),
		"edits":    edits,
		"degraded": degraded,
		"stats": ir.IRObject{
			"spaces":             ir.IRInt(s.Spaces),
			"entities":           ir.IRInt(s.Entities),
			"properties":         ir.IRInt(s.Properties),
			"values":             ir.IRInt(s.Values),
			"relations":          ir.IRInt(s.Relations),
			"degraded":           ir.IRInt(s.Degraded),
			"skipped_properties": ir.IRInt(s.SkippedProperties),
		},
	}
	return ir.MarshalCanonicalIndent(snapshot, "  ")
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
