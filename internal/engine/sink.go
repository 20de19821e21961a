package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/geomigrate/internal/graph"
	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/store"
)

// Sink receives the finished edit of each space.
type Sink interface {
	Write(ctx context.Context, edit graph.Edit) error
}

// FileSink writes two files per space into Dir:
//
//	<space>_ops.json   the ops array
//	<space>_edit.json  the edit envelope, ops included
//
// Both are canonical JSON indented with two spaces.
type FileSink struct {
	Dir string
}

// Write implements Sink.
func (s FileSink) Write(_ context.Context, edit graph.Edit) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ops, err := ir.MarshalCanonicalIndent(graph.EncodeOps(edit.Ops), "  ")
	if err != nil {
		return fmt.Errorf("encode ops: %w", err)
	}
	env, err := ir.MarshalCanonicalIndent(edit.ToIR(), "  ")
	if err != nil {
		return fmt.Errorf("encode edit: %w", err)
	}

	if err := os.WriteFile(s.OpsPath(edit.SpaceID), ops, 0o644); err != nil {
		return fmt.Errorf("write ops: %w", err)
	}
	if err := os.WriteFile(s.EditPath(edit.SpaceID), env, 0o644); err != nil {
		return fmt.Errorf("write edit: %w", err)
	}
	return nil
}

// OpsPath returns the ops file of a space.
func (s FileSink) OpsPath(spaceID string) string {
	return filepath.Join(s.Dir, spaceID+"_ops.json")
}

// EditPath returns the edit file of a space.
func (s FileSink) EditPath(spaceID string) string {
	return filepath.Join(s.Dir, spaceID+"_edit.json")
}

// Ledger records edits. Implemented by store.Store.
type Ledger interface {
	RecordEdit(ctx context.Context, rec store.EditRecord) (bool, error)
}

// LedgerSink records each edit in a Ledger.
type LedgerSink struct {
	Ledger Ledger
}

// Write implements Sink. Recording an edit that is already in the ledger
// is not an error.
func (s LedgerSink) Write(ctx context.Context, edit graph.Edit) error {
	body, err := ir.MarshalCanonical(edit.ToIR())
	if err != nil {
		return fmt.Errorf("encode edit: %w", err)
	}
	counts := edit.Count()
	_, err = s.Ledger.RecordEdit(ctx, store.EditRecord{
		Checksum:      edit.EditChecksum,
		SpaceID:       edit.SpaceID,
		Name:          edit.Name,
		Author:        edit.Author,
		OpsChecksum:   edit.OpsChecksum,
		OpCount:       len(edit.Ops),
		EntityCount:   counts.Entities,
		PropertyCount: counts.Properties,
		RelationCount: counts.Relations,
		Body:          string(body),
	})
	return err
}

// MultiSink writes to each sink in order and stops at the first failure.
type MultiSink []Sink

// Write implements Sink.
func (m MultiSink) Write(ctx context.Context, edit graph.Edit) error {
	for _, s := range m {
		if err := s.Write(ctx, edit); err != nil {
			return err
		}
	}
	return nil
}

// MemorySink keeps edits in memory, in write order. It is not safe for
// concurrent use; the engine writes one space at a time.
type MemorySink struct {
	Edits []graph.Edit
}

// Write implements Sink.
func (m *MemorySink) Write(_ context.Context, edit graph.Edit) error {
	m.Edits = append(m.Edits, edit)
	return nil
}
