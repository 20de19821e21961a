package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/testutil"
)

const space = "ETLCku7ZPvqysA9sHDw58K"

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "one text value",
		Attributes: []ir.AttributeRow{
			{ID: "p1", EntityID: "alice", SpaceID: space, AttributeID: "name", TextValue: testutil.Text("Alice")},
		},
		Assertions: []Assertion{
			{Type: AssertValueEquals, Entity: "alice", Attribute: "name", Value: "Alice"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Edits, 1)
	assert.Equal(t, space, result.Edits[0].SpaceID)
	assert.Equal(t, Author, result.Edits[0].Author)
	assert.Equal(t, int64(1), result.Stats.Values)
}

func TestRun_FailingAssertionsAreCollected(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "assertions that do not hold",
		Attributes: []ir.AttributeRow{
			{ID: "p1", EntityID: "alice", SpaceID: space, AttributeID: "name", TextValue: testutil.Text("Alice")},
		},
		Assertions: []Assertion{
			{Type: AssertValueEquals, Entity: "alice", Attribute: "name", Value: "Bob"},
			{Type: AssertValueEquals, Entity: "alice", Attribute: "name", Value: "Alice"},
			{Type: AssertDegradedCount, Count: 1},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], `"Alice"`)
	assert.Contains(t, result.Errors[1], "assertions[2]")
}

func TestRun_SequentialEdgeIDs(t *testing.T) {
	scenario := &Scenario{
		Name:        "edges",
		Description: "edge ids follow row order",
		Relations: []ir.RelationRow{
			{ID: "r1", TypeID: "knows", FromEntityID: "alice", ToEntityID: "bob", SpaceID: space, Index: "a0"},
			{ID: "r2", TypeID: "knows", FromEntityID: "alice", ToEntityID: "carol", SpaceID: space, Index: "a1"},
		},
		Assertions: []Assertion{{Type: AssertRelationCount, Entity: "alice", Count: 2}},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	var ids []string
	for _, op := range result.Ops() {
		if rel, ok := op.(graph.CreateRelation); ok {
			ids = append(ids, rel.ID)
		}
	}
	assert.Equal(t, []string{testutil.SequenceID(1), testutil.SequenceID(2)}, ids)
}

func TestRun_Isolated(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/query_values.yaml")
	require.NoError(t, err)

	first, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Edits[0].EditChecksum, second.Edits[0].EditChecksum)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scenario := &Scenario{
		Name:        "cancelled",
		Description: "never runs",
		Attributes: []ir.AttributeRow{
			{ID: "p1", EntityID: "alice", SpaceID: space, AttributeID: "name", TextValue: testutil.Text("Alice")},
		},
		Assertions: []Assertion{{Type: AssertDegradedCount}},
	}
	_, err := Run(ctx, scenario)
	require.Error(t, err)
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
