package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/store"
)

// SeedStore opens a SQLite snapshot in a temp directory and loads rows
// into it. The store is closed when the test ends.
func SeedStore(t testing.TB, attrs []ir.AttributeRow, rels []ir.RelationRow) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "legacy.db"))
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	if err := s.InsertAttributes(ctx, attrs); err != nil {
		t.Fatalf("seed attributes: %v", err)
	}
	if err := s.InsertRelations(ctx, rels); err != nil {
		t.Fatalf("seed relations: %v", err)
	}
	return s
}

// Text returns a pointer to s, for AttributeRow.TextValue.
func Text(s string) *string {
	return &s
}

// Number returns a pointer to f, for AttributeRow.NumberValue.
func Number(f float64) *float64 {
	return &f
}

// Bool returns a pointer to b, for AttributeRow.BooleanValue.
func Bool(b bool) *bool {
	return &b
}
