package graph

import "github.com/roach88/geomigrate/internal/ir"

// Op is a graph operation.
//
// This is a sealed interface; only types in this package implement it.
type Op interface {
	opNode()
	// ToIR encodes the op.
	ToIR() ir.IRObject
}

// CreateProperty declares a property with a data type.
type CreateProperty struct {
	ID       string
	DataType DataType
}

func (CreateProperty) opNode() {}

// ToIR implements Op.
func (o CreateProperty) ToIR() ir.IRObject {
	return ir.IRObject{
		"type": ir.IRString("CREATE_PROPERTY"),
		"property": ir.IRObject{
			"id":       ir.IRString(o.ID),
			"dataType": ir.IRString(string(o.DataType)),
		},
	}
}

// CreateEntity creates an entity with its values.
type CreateEntity struct {
	ID     string
	Values []ir.ValueEntry
}

func (CreateEntity) opNode() {}

// ToIR implements Op.
func (o CreateEntity) ToIR() ir.IRObject {
	values := make(ir.IRArray, len(o.Values))
	for i, v := range o.Values {
		values[i] = v.ToIR()
	}
	return ir.IRObject{
		"type": ir.IRString("CREATE_ENTITY"),
		"entity": ir.IRObject{
			"id":     ir.IRString(o.ID),
			"values": values,
		},
	}
}

// CreateRelation creates one typed edge.
type CreateRelation struct {
	ID         string
	Type       string
	FromEntity string
	ToEntity   string
	ToSpace    string
	Position   string
	Entity     string // relation entity id; empty for generated relations
}

func (CreateRelation) opNode() {}

// ToIR implements Op.
func (o CreateRelation) ToIR() ir.IRObject {
	rel := ir.IRObject{
		"id":         ir.IRString(o.ID),
		"type":       ir.IRString(o.Type),
		"fromEntity": ir.IRString(o.FromEntity),
		"toEntity":   ir.IRString(o.ToEntity),
	}
	if o.ToSpace != "" {
		rel["toSpace"] = ir.IRString(o.ToSpace)
	}
	if o.Position != "" {
		rel["position"] = ir.IRString(o.Position)
	}
	if o.Entity != "" {
		rel["entity"] = ir.IRString(o.Entity)
	}
	return ir.IRObject{
		"type":     ir.IRString("CREATE_RELATION"),
		"relation": rel,
	}
}

// RelationOps expands a relation map into CreateRelation ops from entity.
// Relation types are visited in RFC 8785 key order and entries in list
// order, so the result is deterministic.
func RelationOps(from string, m ir.RelationMap) []Op {
	keys := make(ir.IRObject, len(m))
	for k := range m {
		keys[k] = ir.IRBool(true)
	}

	var ops []Op
	for _, typeID := range keys.SortedKeys() {
		for _, e := range m[typeID] {
			ops = append(ops, CreateRelation{
				ID:         e.ID,
				Type:       typeID,
				FromEntity: from,
				ToEntity:   e.ToEntity,
				ToSpace:    e.ToSpace,
				Position:   e.Position,
				Entity:     e.EntityID,
			})
		}
	}
	return ops
}

// EncodeOps encodes ops in order.
func EncodeOps(ops []Op) ir.IRArray {
	arr := make(ir.IRArray, len(ops))
	for i, op := range ops {
		arr[i] = op.ToIR()
	}
	return arr
}
