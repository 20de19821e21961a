package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/geomigrate/internal/canon"
)

func TestSequenceGenerator_Order(t *testing.T) {
	gen := NewSequenceGenerator()

	assert.Equal(t, "00000000-0000-4000-8000-000000000001", gen.Generate())
	assert.Equal(t, "00000000-0000-4000-8000-000000000002", gen.Generate())
	assert.Equal(t, int64(2), gen.Count())
	assert.Equal(t, SequenceID(3), gen.Generate())
}

func TestSequenceGenerator_Reset(t *testing.T) {
	gen := NewSequenceGenerator()
	gen.Generate()
	gen.Generate()

	gen.Reset()
	assert.Equal(t, int64(0), gen.Count())
	assert.Equal(t, SequenceID(1), gen.Generate())
}

func TestSequenceGenerator_IDsAreCanonical(t *testing.T) {
	c := canon.New()
	gen := NewSequenceGenerator()
	for i := 0; i < 20; i++ {
		id := gen.Generate()
		assert.True(t, c.IsCanonical(id), id)
		assert.Equal(t, id, c.Canonicalize(id))
	}
}

func TestSequenceGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequenceGenerator()
	const numGoroutines = 50
	const callsPerGoroutine = 100

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, numGoroutines*callsPerGoroutine, "all IDs unique")
	assert.Equal(t, int64(numGoroutines*callsPerGoroutine), gen.Count())
}
