package graph

import (
	"fmt"

	"github.com/roach88/geomigrate/internal/ir"
)

// Edit is the unit of output for one space.
type Edit struct {
	SpaceID      string
	Name         string
	Author       string
	Ops          []Op
	OpsChecksum  string
	EditChecksum string
}

// EditName returns the name given to a space's migration edit.
func EditName(spaceID string) string {
	return "Migration for space " + spaceID
}

// NewEdit builds an edit and computes its checksums.
func NewEdit(spaceID, author string, ops []Op) (Edit, error) {
	e := Edit{SpaceID: spaceID, Name: EditName(spaceID), Author: author, Ops: ops}

	opsSum, err := ir.OpsChecksum(EncodeOps(ops))
	if err != nil {
		return Edit{}, fmt.Errorf("edit for space %s: %w", spaceID, err)
	}
	editSum, err := ir.EditChecksum(e.Name, author, opsSum)
	if err != nil {
		return Edit{}, fmt.Errorf("edit for space %s: %w", spaceID, err)
	}
	e.OpsChecksum = opsSum
	e.EditChecksum = editSum
	return e, nil
}

// ToIR encodes the edit envelope including its ops.
func (e Edit) ToIR() ir.IRObject {
	return ir.IRObject{
		"name":          ir.IRString(e.Name),
		"author":        ir.IRString(e.Author),
		"space":         ir.IRString(e.SpaceID),
		"ops":           EncodeOps(e.Ops),
		"opsChecksum":   ir.IRString(e.OpsChecksum),
		"checksum":      ir.IRString(e.EditChecksum),
		"formatVersion": ir.IRString(ir.FormatVersion),
		"toolVersion":   ir.IRString(ir.ToolVersion),
	}
}

// Counts tallies ops by kind.
type Counts struct {
	Properties int
	Entities   int
	Relations  int
	Values     int
}

// Count tallies e's ops.
func (e Edit) Count() Counts {
	var c Counts
	for _, op := range e.Ops {
		switch o := op.(type) {
		case CreateProperty:
			c.Properties++
		case CreateEntity:
			c.Entities++
			c.Values += len(o.Values)
		case CreateRelation:
			c.Relations++
		}
	}
	return c
}
