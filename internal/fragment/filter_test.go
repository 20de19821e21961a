package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/ir"
)

const (
	idA = "c1f4cb6f-ece4-4c3c-a447-ab005b756972"
	idB = "6cf3f985-17a9-42a9-8f21-672a58e32ae8"
)

func TestFilterToIROmitsEmptyContainers(t *testing.T) {
	assert.Equal(t, ir.IRObject{}, NewFilter().ToIR())
	assert.True(t, NewFilter().IsEmpty())

	spacesOnly := Filter{SpaceIDs: []string{idA}}
	assert.Equal(t, ir.IRObject{
		"spaceId": ir.IRObject{"in": ir.IRArray{ir.IRString(idA)}},
	}, spacesOnly.ToIR())
}

func TestFilterToIRRelationGroup(t *testing.T) {
	f := NewFilter()
	f.Relation[AliasToEntity] = Condition{Is: idB}

	got, err := ir.MarshalCanonical(f.ToIR())
	require.NoError(t, err)

	assert.Equal(t, `{"filter":{"_relation":{"toEntity":{"is":"`+idB+`"}}}}`, string(got))
}

func TestFilterToIRFieldsAndRelation(t *testing.T) {
	f := NewFilter()
	f.SpaceIDs = []string{idA}
	f.Fields[idA] = Condition{Is: idB}
	f.Relation[AliasType] = Condition{Is: idA}
	f.Relation[AliasFromEntity] = Condition{Is: idB}

	got, err := ir.MarshalCanonical(f.ToIR())
	require.NoError(t, err)

	want := `{"filter":{"_relation":{"fromEntity":{"is":"` + idB + `"},"type":{"is":"` + idA + `"}},` +
		`"` + idA + `":{"is":"` + idB + `"}},"spaceId":{"in":["` + idA + `"]}}`
	assert.Equal(t, want, string(got))
}

func TestRelationAliasKeys(t *testing.T) {
	keys := make([]string, 0, 3)
	for _, a := range Aliases() {
		keys = append(keys, a.Key())
	}
	assert.Equal(t, []string{"toEntity", "fromEntity", "type"}, keys)
	assert.Panics(t, func() { _ = RelationAlias(9).Key() })
}
