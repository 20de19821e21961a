package canon

import (
	"sync"

	"github.com/google/uuid"
)

// Generator mints fresh identifiers for new edges.
type Generator interface {
	Generate() string
}

// RandomGenerator mints random v4 UUIDs. It is stateless and safe for
// concurrent use.
type RandomGenerator struct{}

// Generate returns a new hyphenated v4 UUID.
//
// Panics if the system random source fails.
func (RandomGenerator) Generate() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// FixedGenerator returns predetermined identifiers in order.
//
// Safe for concurrent use.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedGenerator("edge-1", "edge-2")
//	gen.Generate() // "edge-1"
//	gen.Generate() // "edge-2"
//	gen.Generate() // panic: all ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics when exhausted so a test that mints more edges than it planned
// fails loudly.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Remaining returns how many ids have not been handed out yet.
func (g *FixedGenerator) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.ids) - g.idx
}
