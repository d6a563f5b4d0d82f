package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greypawn/chessbot/core"
)

func TestRegistryInsertAndRemove(t *testing.T) {
	r := New()
	sess := core.NewSession("g1", func() {})

	require.NoError(t, r.Insert(sess))
	assert.Equal(t, 1, r.Count())

	got, ok := r.Get("g1")
	require.True(t, ok)
	assert.Same(t, sess, got)

	assert.ErrorIs(t, r.Insert(core.NewSession("g1", func() {})), ErrSessionExists)
	assert.Equal(t, 1, r.Count())

	removed, ok := r.Remove("g1")
	require.True(t, ok)
	assert.Same(t, sess, removed)
	assert.Equal(t, 0, r.Count())

	_, ok = r.Remove("g1")
	assert.False(t, ok, "second remove is a miss")
	_, ok = r.Get("g1")
	assert.False(t, ok)
}

func TestRegistryConcurrentInsertSameID(t *testing.T) {
	r := New()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Insert(core.NewSession("g1", func() {}))
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSessionExists)
		}
	}
	assert.Equal(t, 1, wins, "exactly one insert wins")
	assert.Equal(t, 1, r.Count())
}

func TestRegistryIDs(t *testing.T) {
	r := New()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Insert(core.NewSession(fmt.Sprintf("g%d", i), func() {})))
	}
	assert.ElementsMatch(t, []string{"g0", "g1", "g2"}, r.IDs())
}
