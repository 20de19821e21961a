package fragment

import "github.com/roach88/geomigrate/internal/ir"

// RelationKey is the reserved key grouping relation-role conditions.
const RelationKey = "_relation"

// RelationAlias is a relation role that a legacy attribute condition is
// reinterpreted as.
type RelationAlias int

const (
	AliasToEntity RelationAlias = iota
	AliasFromEntity
	AliasType
)

// Aliases lists every alias.
func Aliases() []RelationAlias {
	return []RelationAlias{AliasToEntity, AliasFromEntity, AliasType}
}

// Key returns the JSON key used under _relation.
func (a RelationAlias) Key() string {
	switch a {
	case AliasToEntity:
		return "toEntity"
	case AliasFromEntity:
		return "fromEntity"
	case AliasType:
		return "type"
	default:
		panic("fragment: unknown relation alias")
	}
}

// String implements fmt.Stringer.
func (a RelationAlias) String() string {
	return a.Key()
}

// Condition is an equality test against a canonical identifier.
type Condition struct {
	Is string
}

func (c Condition) toIR() ir.IRObject {
	return ir.IRObject{"is": ir.IRString(c.Is)}
}

// Filter is a Structured Filter.
//
// Empty collections are omitted from the encoding. Fields and Relation are
// maps, so a later condition on the same key replaces an earlier one.
type Filter struct {
	SpaceIDs []string
	Fields   map[string]Condition
	Relation map[RelationAlias]Condition
}

// NewFilter returns a Filter with initialized maps.
func NewFilter() Filter {
	return Filter{
		Fields:   make(map[string]Condition),
		Relation: make(map[RelationAlias]Condition),
	}
}

// IsEmpty reports whether the filter would encode to {}.
func (f Filter) IsEmpty() bool {
	return len(f.SpaceIDs) == 0 && len(f.Fields) == 0 && len(f.Relation) == 0
}

// ToIR encodes the filter.
func (f Filter) ToIR() ir.IRObject {
	out := ir.IRObject{}
	if len(f.SpaceIDs) > 0 {
		ids := make(ir.IRArray, len(f.SpaceIDs))
		for i, id := range f.SpaceIDs {
			ids[i] = ir.IRString(id)
		}
		out["spaceId"] = ir.IRObject{"in": ids}
	}

	if len(f.Fields) == 0 && len(f.Relation) == 0 {
		return out
	}
	body := ir.IRObject{}
	for key, cond := range f.Fields {
		body[key] = cond.toIR()
	}
	if len(f.Relation) > 0 {
		rel := ir.IRObject{}
		for alias, cond := range f.Relation {
			rel[alias.Key()] = cond.toIR()
		}
		body[RelationKey] = rel
	}
	out["filter"] = body
	return out
}
