package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/querysql"
	"github.com/roach88/geomigrate/internal/source"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		s.Close()
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"properties", "relations", "edits"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		assert.NoError(t, err, "table %q not found after idempotent opens", table)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_MigratesVersionZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.db.Exec("DROP INDEX idx_edits_space")
	require.NoError(t, err)
	_, err = s.db.Exec("PRAGMA user_version = 0")
	require.NoError(t, err)
	s.Close()

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var name string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_edits_space'").Scan(&name)
	assert.NoError(t, err)
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestStore_ImplementsQuerier(t *testing.T) {
	s := createTestStore(t)
	var q source.Querier = s
	assert.Equal(t, querysql.SQLite, q.Dialect())
}

func TestQueryRows_ScansInOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAttributes(ctx, []ir.AttributeRow{
		textRow("p2", "e1", "s1", "a", "second"),
		textRow("p1", "e1", "s1", "a", "first"),
	}))

	var got []string
	err := s.QueryRows(ctx,
		"SELECT text_value FROM properties WHERE entity_id = ? ORDER BY id COLLATE BINARY ASC",
		[]any{"e1"},
		func(row source.Scanner) error {
			var v string
			if err := row.Scan(&v); err != nil {
				return err
			}
			got = append(got, v)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestQueryRows_PropagatesScanError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InsertAttributes(ctx, []ir.AttributeRow{textRow("p1", "e1", "s1", "a", "x")}))

	err := s.QueryRows(ctx, "SELECT id FROM properties", nil, func(source.Scanner) error {
		return assert.AnError
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "scan row")
}

func TestQueryRows_BadSQL(t *testing.T) {
	s := createTestStore(t)
	err := s.QueryRows(context.Background(), "SELECT nope FROM nowhere", nil, func(source.Scanner) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
