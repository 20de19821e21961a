package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator mints canonical-shaped edge IDs from a counter:
//
//	00000000-0000-4000-8000-000000000001
//	00000000-0000-4000-8000-000000000002
//
// The output is a valid v4 UUID string, so it passes through the
// canonicalizer unchanged and golden files stay readable.
//
// Thread-safety: all methods are safe for concurrent use. Under concurrent
// callers the IDs are unique but their assignment order is not fixed; use a
// single worker when a test depends on which entity gets which ID.
type SequenceGenerator struct {
	mu sync.Mutex
	n  int64
}

// NewSequenceGenerator creates a generator whose first ID ends in 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Generate returns the next ID.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return SequenceID(g.n)
}

// Count returns how many IDs have been generated.
func (g *SequenceGenerator) Count() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset restarts the sequence. The next ID ends in 1 again.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

// SequenceID returns the n-th ID a SequenceGenerator produces.
func SequenceID(n int64) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}
