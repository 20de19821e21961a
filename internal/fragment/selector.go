package fragment

import "github.com/roach88/geomigrate/internal/ir"

// Selector is a Structured Selector.
//
// This is a sealed interface; only types in this package implement it.
type Selector interface {
	selectorNode()
}

// Empty is the marker for a selector that carries no meaning once
// translated.
type Empty struct{}

func (Empty) selectorNode() {}

// Property selects a property of the relation's target entity.
type Property struct {
	Property string
}

func (Property) selectorNode() {}

// FromProperty selects a property of the relation's source entity.
type FromProperty struct {
	Property string
}

func (FromProperty) selectorNode() {}

// Relation selects a relation of the target entity.
type Relation struct {
	Relation string
}

func (Relation) selectorNode() {}

// RelationEntity selects a property or relation of the relation entity
// itself.
type RelationEntity struct {
	Key string
}

func (RelationEntity) selectorNode() {}

// Encode returns the JSON object for sel. The boolean is false for Empty,
// which has no encoding.
func Encode(sel Selector) (ir.IRObject, bool) {
	switch s := sel.(type) {
	case Empty:
		return nil, false
	case Property:
		return ir.IRObject{s.Property: ir.EmptyObject()}, true
	case FromProperty:
		return relationGroup("from", s.Property), true
	case Relation:
		return ir.IRObject{s.Relation: ir.EmptyObject()}, true
	case RelationEntity:
		return relationGroup("entity", s.Key), true
	default:
		panic("fragment: unknown selector type")
	}
}

func relationGroup(role, id string) ir.IRObject {
	return ir.IRObject{
		RelationKey: ir.IRObject{
			role: ir.IRObject{id: ir.EmptyObject()},
		},
	}
}

// identifiers returns the ids referenced by sel.
func identifiers(sel Selector) []string {
	switch s := sel.(type) {
	case Empty:
		return nil
	case Property:
		return []string{s.Property}
	case FromProperty:
		return []string{s.Property}
	case Relation:
		return []string{s.Relation}
	case RelationEntity:
		return []string{s.Key}
	default:
		panic("fragment: unknown selector type")
	}
}
