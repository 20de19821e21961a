package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/geomigrate/internal/ir"
)

// createTestStore opens a fresh snapshot in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func textRow(id, entity, space, attribute, value string) ir.AttributeRow {
	return ir.AttributeRow{
		ID:          id,
		EntityID:    entity,
		SpaceID:     space,
		AttributeID: attribute,
		TextValue:   &value,
		ValueType:   ir.KindText,
	}
}
