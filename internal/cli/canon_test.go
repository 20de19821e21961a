package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanon_Text(t *testing.T) {
	out, err := execute(t, "canon", "ETLCku7ZPvqysA9sHDw58K", "knows", "6cf3f985-17a9-42a9-8f21-672a58e32ae8")
	require.NoError(t, err)

	assert.Equal(t,
		"ETLCku7ZPvqysA9sHDw58K\t6cf3f985-17a9-42a9-8f21-672a58e32ae8\tbase58\n"+
			"knows\t6047cc85-618d-41f4-b07e-80ecfb65e5a6\tderived\n"+
			"6cf3f985-17a9-42a9-8f21-672a58e32ae8\t6cf3f985-17a9-42a9-8f21-672a58e32ae8\tcanonical\n",
		out)
}

func TestCanon_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "canon", "worksAt")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []CanonResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []CanonResult{{
		Input:     "worksAt",
		Canonical: "9bea10e0-adbe-48f4-a131-ece0ab9de040",
		Route:     "derived",
	}}, resp.Data)
}

func TestCanon_RequiresArgument(t *testing.T) {
	_, err := execute(t, "canon")
	require.Error(t, err)
}
