package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/geomigrate/internal/ir"
)

func TestBuildRelationsGroupsByType(t *testing.T) {
	b, _ := newTestBuilder(t, "edge-1", "edge-2", "edge-3")

	got := b.BuildRelations([]ir.RelationRow{
		{ID: "hello", TypeID: "GscJ2GELQjmLoaVrYyR3xm", ToEntityID: "Person", Index: "a0"},
		{ID: "Person", TypeID: "Qx8dASiTNsxxP3rJbd4Lzd", ToEntityID: "hello", ToSpaceID: "ETLCku7ZPvqysA9sHDw58K"},
		{ID: "RERshk4JoYoMC17r1qAo9J", TypeID: "GscJ2GELQjmLoaVrYyR3xm", ToEntityID: "hello", Index: "a1"},
	})

	assert.Equal(t, ir.RelationMap{
		propertyID: {
			{ID: "edge-1", ToEntity: personID, EntityID: helloID, Position: "a0"},
			{ID: "edge-3", ToEntity: helloID, EntityID: fromEntityID, Position: "a1"},
		},
		toEntityID: {
			{ID: "edge-2", ToEntity: helloID, EntityID: personID, ToSpace: spaceID},
		},
	}, got)
}

func TestBuildRelationsEmpty(t *testing.T) {
	b, _ := newTestBuilder(t)

	assert.Empty(t, b.BuildRelations(nil))
}

func TestBuildRelationFreshIDsAreIndependentOfInput(t *testing.T) {
	b, _ := newTestBuilder(t, "first", "second")
	row := ir.RelationRow{ID: "hello", TypeID: "Person", ToEntityID: "hello"}

	a := b.BuildRelation(row)
	c := b.BuildRelation(row)

	assert.Equal(t, "first", a.ID)
	assert.Equal(t, "second", c.ID)
	assert.Equal(t, a.EntityID, c.EntityID)
}
