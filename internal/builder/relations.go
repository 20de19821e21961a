package builder

import "github.com/roach88/geomigrate/internal/ir"

// BuildRelations groups rows by canonical relation type. Each row gets a
// freshly generated edge id; list order follows row order.
func (b *Builder) BuildRelations(rows []ir.RelationRow) ir.RelationMap {
	out := make(ir.RelationMap)
	for _, row := range rows {
		typeID := b.canon.Canonicalize(row.TypeID)
		out[typeID] = append(out[typeID], b.BuildRelation(row))
	}
	return out
}

// BuildRelation converts one row without grouping it.
func (b *Builder) BuildRelation(row ir.RelationRow) ir.RelationEntry {
	entry := ir.RelationEntry{
		ID:       b.ids.Generate(),
		ToEntity: b.canon.Canonicalize(row.ToEntityID),
		EntityID: b.canon.Canonicalize(row.ID),
		Position: row.Index,
	}
	if row.ToSpaceID != "" {
		entry.ToSpace = b.canon.Canonicalize(row.ToSpaceID)
	}
	return entry
}
