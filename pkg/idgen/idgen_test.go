package idgen_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/idgen"
)

func TestUUIDv7(t *testing.T) {
	t.Parallel()

	gen := idgen.UUIDv7()
	seen := make(map[string]bool)
	for range 1000 {
		id := gen()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	gen := idgen.Sequence()
	assert.Equal(t, "1", gen())
	assert.Equal(t, "2", gen())

	other := idgen.Sequence()
	assert.Equal(t, "1", other(), "sequences are independent")
}

func TestSequence_Concurrent(t *testing.T) {
	t.Parallel()

	gen := idgen.Sequence()
	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := gen()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestPrefixed(t *testing.T) {
	t.Parallel()

	gen := idgen.Prefixed("col-", idgen.Sequence())
	assert.Equal(t, "col-1", gen())
	assert.NotEmpty(t, idgen.New())
}
