package graph

import (
	"fmt"
	"sort"

	"roci.dev/fracdex"

	"github.com/roach88/geomigrate/internal/ir"
)

// FirstPosition is the key of the first item in an empty list.
const FirstPosition = "a0"

// PositionAfter returns the fractional-index key that follows prev with
// nothing after it. An empty prev yields FirstPosition. Keys run a0..az,
// b00..bzz, and so on; a prev with a fractional tail is followed by the
// next integer key.
func PositionAfter(prev string) (string, error) {
	key, err := fracdex.KeyBetween(prev, "")
	if err != nil {
		return "", fmt.Errorf("position after %q: %w", prev, err)
	}
	return key, nil
}

// Reindex stable-sorts rows by their legacy ordering key (byte order) and
// replaces each key with a sequential position: a0, a1, and so on.
// The input slice is not modified.
func Reindex(rows []ir.RelationRow) ([]ir.RelationRow, error) {
	out := make([]ir.RelationRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})

	prev := ""
	for i := range out {
		key, err := PositionAfter(prev)
		if err != nil {
			return nil, fmt.Errorf("reindex relation %s: %w", out[i].ID, err)
		}
		out[i].Index = key
		prev = key
	}
	return out, nil
}
