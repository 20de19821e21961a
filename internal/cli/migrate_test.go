package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/engine"
	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/store"
	"github.com/roach88/geomigrate/internal/testutil"
)

const (
	legacySpace = "ETLCku7ZPvqysA9sHDw58K"
	testAuthor  = "0x84713663033dC5ba5699280728545df11e76BCC1"
)

// writeSnapshot creates a legacy SQLite file with one entity that has a
// name and a relation.
func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.InsertAttributes(ctx, []ir.AttributeRow{
		{ID: "p1", EntityID: "alice", SpaceID: legacySpace, AttributeID: "name", TextValue: testutil.Text("Alice"), ValueType: ir.KindText},
	}))
	require.NoError(t, s.InsertRelations(ctx, []ir.RelationRow{
		{ID: "r1", TypeID: "knows", FromEntityID: "alice", ToEntityID: "bob", SpaceID: legacySpace},
	}))
	return path
}

// runMigrateCmd executes the migrate command with sequential edge IDs.
func runMigrateCmd(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()
	opts := &MigrateOptions{
		RootOptions: &RootOptions{Format: format},
		IDs:         testutil.NewSequenceGenerator(),
	}
	cmd := newMigrateCommand(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestMigrate_WritesEditFiles(t *testing.T) {
	snapshot := writeSnapshot(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := runMigrateCmd(t, "text",
		"--sqlite", snapshot, "--author", testAuthor, "--out", outDir, "--workers", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\u2713 "+legacySpace+": ")
	assert.Contains(t, stdout, "Migrated 1 spaces: 1 entities, 0 properties, 1 values, 1 relations, 0 degraded")

	sink := engine.FileSink{Dir: outDir}
	ops, err := os.ReadFile(sink.OpsPath(legacySpace))
	require.NoError(t, err)
	c := canon.New()
	assert.Contains(t, string(ops), c.Canonicalize("alice"))
	assert.Contains(t, string(ops), `"Alice"`)
	assert.Contains(t, string(ops), testutil.SequenceID(1))

	edit, err := os.ReadFile(sink.EditPath(legacySpace))
	require.NoError(t, err)
	assert.Contains(t, string(edit), testAuthor)
}

func TestMigrate_JSONReport(t *testing.T) {
	snapshot := writeSnapshot(t)

	stdout, _, err := runMigrateCmd(t, "json",
		"--sqlite", snapshot, "--author", testAuthor, "--out", t.TempDir(), "--space", legacySpace)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   engine.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Spaces, 1)
	assert.Equal(t, legacySpace, resp.Data.Spaces[0].SpaceID)
	assert.Equal(t, int64(1), resp.Data.Totals.Entities)
	assert.Len(t, resp.Data.Spaces[0].EditChecksum, 64)
}

func TestMigrate_Ledger(t *testing.T) {
	snapshot := writeSnapshot(t)
	ledgerPath := filepath.Join(t.TempDir(), "ledger.db")

	_, _, err := runMigrateCmd(t, "text",
		"--sqlite", snapshot, "--author", testAuthor, "--out", t.TempDir(), "--ledger", ledgerPath)
	require.NoError(t, err)

	ledger, err := store.Open(ledgerPath)
	require.NoError(t, err)
	defer ledger.Close()
	edits, err := ledger.Edits(context.Background(), legacySpace)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, testAuthor, edits[0].Author)
}

func TestMigrate_ConfigFileWithOverrides(t *testing.T) {
	snapshot := writeSnapshot(t)
	outDir := filepath.Join(t.TempDir(), "from-flag")
	cfgPath := filepath.Join(t.TempDir(), "migrate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`author: "`+testAuthor+`"
workers: 2
output_dir: never-used
source:
  driver: sqlite
  dsn: "`+snapshot+`"
`), 0o644))

	_, _, err := runMigrateCmd(t, "text", "--config", cfgPath, "--out", outDir)
	require.NoError(t, err)
	assert.FileExists(t, engine.FileSink{Dir: outDir}.OpsPath(legacySpace))
}

func TestMigrate_CommandErrors(t *testing.T) {
	snapshot := writeSnapshot(t)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "missing author",
			args:    []string{"--sqlite", snapshot, "--out", t.TempDir()},
			wantMsg: "E_CONFIG",
		},
		{
			name:    "missing source",
			args:    []string{"--author", testAuthor},
			wantMsg: "E_CONFIG",
		},
		{
			name:    "both sources",
			args:    []string{"--sqlite", snapshot, "--postgres", "postgres://localhost/x", "--author", testAuthor},
			wantMsg: "mutually exclusive",
		},
		{
			name:    "zero workers",
			args:    []string{"--sqlite", snapshot, "--author", testAuthor, "--workers", "0"},
			wantMsg: "E_CONFIG",
		},
		{
			name:    "snapshot does not exist",
			args:    []string{"--sqlite", filepath.Join(t.TempDir(), "missing.db"), "--author", testAuthor},
			wantMsg: "E_SOURCE",
		},
		{
			name:    "unreadable config",
			args:    []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
			wantMsg: "READ_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runMigrateCmd(t, "text", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout+err.Error(), tt.wantMsg)
		})
	}
}

func TestMigrate_SinkFailureIsMigrationFailure(t *testing.T) {
	snapshot := writeSnapshot(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	stdout, _, err := runMigrateCmd(t, "text",
		"--sqlite", snapshot, "--author", testAuthor, "--out", filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "E_MIGRATION")
	assert.True(t, engine.IsSinkError(err))
}
