package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/ir"
)

func TestOpEncoding(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want string
	}{
		{
			name: "create property",
			op:   CreateProperty{ID: "p", DataType: DataTypeNumber},
			want: `{"property":{"dataType":"NUMBER","id":"p"},"type":"CREATE_PROPERTY"}`,
		},
		{
			name: "create entity",
			op: CreateEntity{ID: "e", Values: []ir.ValueEntry{
				{Property: "p", Value: "1", Options: &ir.ValueOptions{Kind: ir.KindNumber, Unit: "u"}},
			}},
			want: `{"entity":{"id":"e","values":[{"options":{"type":"number","unit":"u"},"property":"p","value":"1"}]},"type":"CREATE_ENTITY"}`,
		},
		{
			name: "create entity without values",
			op:   CreateEntity{ID: "e"},
			want: `{"entity":{"id":"e","values":[]},"type":"CREATE_ENTITY"}`,
		},
		{
			name: "create relation minimal",
			op:   CreateRelation{ID: "r", Type: "t", FromEntity: "a", ToEntity: "b"},
			want: `{"relation":{"fromEntity":"a","id":"r","toEntity":"b","type":"t"},"type":"CREATE_RELATION"}`,
		},
		{
			name: "create relation full",
			op:   CreateRelation{ID: "r", Type: "t", FromEntity: "a", ToEntity: "b", ToSpace: "s", Position: "a0", Entity: "x"},
			want: `{"relation":{"entity":"x","fromEntity":"a","id":"r","position":"a0","toEntity":"b","toSpace":"s","type":"t"},"type":"CREATE_RELATION"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ir.MarshalCanonical(tt.op.ToIR())
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRelationOpsOrder(t *testing.T) {
	m := ir.RelationMap{
		"b-type": {{ID: "3", ToEntity: "x", EntityID: "e3"}},
		"a-type": {
			{ID: "1", ToEntity: "y", EntityID: "e1", Position: "a0"},
			{ID: "2", ToEntity: "z", EntityID: "e2", Position: "a1"},
		},
	}

	ops := RelationOps("from", m)

	require.Len(t, ops, 3)
	assert.Equal(t, CreateRelation{ID: "1", Type: "a-type", FromEntity: "from", ToEntity: "y", Position: "a0", Entity: "e1"}, ops[0])
	assert.Equal(t, "2", ops[1].(CreateRelation).ID)
	assert.Equal(t, "3", ops[2].(CreateRelation).ID)
}

func TestParseDataType(t *testing.T) {
	for _, dt := range DataTypes() {
		got, err := ParseDataType(string(dt))
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}

	_, err := ParseDataType("text")
	assert.Error(t, err)
}
