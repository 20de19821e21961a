package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/geomigrate/internal/canon"
)

func TestNormalize(t *testing.T) {
	n := New(canon.New())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "space url with entity and tab",
			in:   "https://www.geobrowser.io/space/ETLCku7ZPvqysA9sHDw58K/Qx8dASiTNsxxP3rJbd4Lzd?tabId=RERshk4JoYoMC17r1qAo9J",
			want: "https://www.geobrowser.io/space/6cf3f985-17a9-42a9-8f21-672a58e32ae8/c1f4cb6f-ece4-4c3c-a447-ab005b756972?tabId=c43b537b-cff7-4271-8822-717fdf2c9c01",
		},
		{
			name: "space url with non-id path segment",
			in:   "geobrowser.io/space/ETLCku7ZPvqysA9sHDw58K/short",
			want: "geobrowser.io/space/6cf3f985-17a9-42a9-8f21-672a58e32ae8/short",
		},
		{
			name: "graph uri keeps trailing punctuation",
			in:   "see graph://3WxYoAVreE4qFhkDUs5J3q.",
			want: "see graph://14611456-b466-4cab-920d-2245f59ce828.",
		},
		{
			name: "proposal parameter",
			in:   "proposalId=GscJ2GELQjmLoaVrYyR3xm&x=1",
			want: "proposalId=808a04ce-b21c-4d88-8ad1-2e240613e5ca&x=1",
		},
		{
			name: "multiple matches of one pattern",
			in:   "graph://Qx8dASiTNsxxP3rJbd4Lzd and graph://RERshk4JoYoMC17r1qAo9J",
			want: "graph://c1f4cb6f-ece4-4c3c-a447-ab005b756972 and graph://c43b537b-cff7-4271-8822-717fdf2c9c01",
		},
		{
			name: "non-base58 token is derived",
			in:   "graph://Person_Label_Entity_12",
			want: "graph://3cb760f7-b471-459a-98b8-97c04b8e4656",
		},
		{
			name: "overlong token rewrites the first 22 characters",
			in:   "tabId=abcdefghijkmnopqrstuvwxyz",
			want: "tabId=f1d77d92-1a18-41c9-8f73-e36001d3daedxyz",
		},
		{
			name: "short token untouched",
			in:   "tabId=short and graph://tiny",
			want: "tabId=short and graph://tiny",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizePreservesTextWithoutPatterns(t *testing.T) {
	n := New(canon.New())
	inputs := []string{
		"Plain description with Qx8dASiTNsxxP3rJbd4Lzd but no link",
		"https://example.com/space/ETLCku7ZPvqysA9sHDw58K",
		"multi\nline\ttext {\"json\": true}",
	}

	for _, in := range inputs {
		assert.Equal(t, in, n.Normalize(in))
		assert.Empty(t, n.Matches(in))
	}
}

func TestNormalizeIsStableOnOutput(t *testing.T) {
	n := New(canon.New())
	in := "geobrowser.io/space/ETLCku7ZPvqysA9sHDw58K?tabId=RERshk4JoYoMC17r1qAo9J"

	once := n.Normalize(in)

	assert.Equal(t, once, n.Normalize(once))
}

func TestMatches(t *testing.T) {
	n := New(canon.New())

	got := n.Matches("graph://Qx8dASiTNsxxP3rJbd4Lzd?tabId=RERshk4JoYoMC17r1qAo9J")

	assert.Equal(t, []Pattern{PatternTabID, PatternGraphURI}, got)
}

type recordingCanon struct{ seen []string }

func (r *recordingCanon) Canonicalize(id string) string {
	r.seen = append(r.seen, id)
	return "X"
}

func TestNormalizeCanonicalizesEachGroup(t *testing.T) {
	rc := &recordingCanon{}
	n := New(rc)

	got := n.Normalize("geobrowser.io/space/ETLCku7ZPvqysA9sHDw58K/Qx8dASiTNsxxP3rJbd4Lzd")

	assert.Equal(t, "geobrowser.io/space/X/X", got)
	assert.Equal(t, []string{"ETLCku7ZPvqysA9sHDw58K", "Qx8dASiTNsxxP3rJbd4Lzd"}, rc.seen)
}

func TestPatternString(t *testing.T) {
	names := make([]string, 0, len(Patterns()))
	for _, p := range Patterns() {
		names = append(names, p.String())
	}
	assert.Equal(t, []string{"space_url", "tab_id", "proposal_id", "graph_uri"}, names)
}
