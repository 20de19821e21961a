package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editRecord(checksum, space string) EditRecord {
	return EditRecord{
		Checksum:      checksum,
		SpaceID:       space,
		Name:          "Migration for space " + space,
		Author:        "0xabc",
		OpsChecksum:   "ops-" + checksum,
		OpCount:       3,
		EntityCount:   1,
		PropertyCount: 1,
		RelationCount: 1,
		Body:          `{"name":"Migration for space ` + space + `"}`,
	}
}

func TestRecordEdit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inserted, err := s.RecordEdit(ctx, editRecord("c1", "s1"))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.RecordEdit(ctx, editRecord("c1", "s1"))
	require.NoError(t, err)
	assert.False(t, inserted, "same checksum is ignored")

	inserted, err = s.RecordEdit(ctx, editRecord("c2", "s2"))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestRecordEditRerunWithFreshIDs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Same space and name; fresh edge IDs give a different checksum.
	first := editRecord("c1", "s1")
	rerun := editRecord("c1-rerun", "s1")
	rerun.Name = first.Name

	for _, rec := range []EditRecord{first, rerun} {
		inserted, err := s.RecordEdit(ctx, rec)
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	got, err := s.Edits(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEdits(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.Edits(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, rec := range []EditRecord{editRecord("c2", "s1"), editRecord("c1", "s2"), editRecord("c3", "s1")} {
		_, err := s.RecordEdit(ctx, rec)
		require.NoError(t, err)
	}

	all, err := s.Edits(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c2", "c1", "c3"}, []string{all[0].Checksum, all[1].Checksum, all[2].Checksum})
	assert.Equal(t, int64(1), all[0].Seq)

	s1, err := s.Edits(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, s1, 2)
	assert.Equal(t, "c3", s1[1].Checksum)

	want := editRecord("c3", "s1")
	want.Seq = s1[1].Seq
	assert.Equal(t, want, s1[1])
}
