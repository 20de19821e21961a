package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsChecksumDeterministic(t *testing.T) {
	ops := IRArray{IRObject{"type": IRString("CREATE_ENTITY"), "id": IRString("e1")}}

	a, err := OpsChecksum(ops)
	require.NoError(t, err)
	b, err := OpsChecksum(IRArray{IRObject{"id": IRString("e1"), "type": IRString("CREATE_ENTITY")}})
	require.NoError(t, err)

	assert.Equal(t, a, b, "key order must not affect the checksum")
	assert.Len(t, a, 64)
}

func TestOpsChecksumChangesWithContent(t *testing.T) {
	a, err := OpsChecksum(IRArray{IRString("a")})
	require.NoError(t, err)
	b, err := OpsChecksum(IRArray{IRString("b")})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEditChecksumDomainSeparated(t *testing.T) {
	ops, err := OpsChecksum(IRArray{})
	require.NoError(t, err)

	edit, err := EditChecksum("Migration for space s", "0xabc", ops)
	require.NoError(t, err)
	other, err := EditChecksum("Migration for space s", "0xdef", ops)
	require.NoError(t, err)

	assert.NotEqual(t, ops, edit)
	assert.NotEqual(t, edit, other)
}
