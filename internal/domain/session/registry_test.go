package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

func TestRegistryAcquireRelease(t *testing.T) {
	r := NewRegistry(10)

	require.NoError(t, r.TryAcquire(1001))
	assert.ErrorIs(t, r.TryAcquire(1001), errs.ErrAlreadyLoggedIn)
	assert.Equal(t, 1, r.ActiveCount())

	r.Release(1001)
	assert.Equal(t, 0, r.ActiveCount())
	assert.NoError(t, r.TryAcquire(1001))
}

func TestRegistryReleaseIsIdempotent(t *testing.T) {
	r := NewRegistry(10)
	require.NoError(t, r.TryAcquire(1001))

	r.Release(1001)
	r.Release(1001) // absent id, no-op
	assert.Equal(t, 0, r.ActiveCount())
}

func TestRegistryCapacity(t *testing.T) {
	r := NewRegistry(2)
	require.NoError(t, r.TryAcquire(1))
	require.NoError(t, r.TryAcquire(2))
	assert.ErrorIs(t, r.TryAcquire(3), errs.ErrSessionsFull)

	r.Release(1)
	assert.NoError(t, r.TryAcquire(3))
}

func TestRegistryConcurrentLoginsSameUser(t *testing.T) {
	r := NewRegistry(100)

	const attempts = 50
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryAcquire(1004) == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, 1, count, "exactly one concurrent login may win")
}
