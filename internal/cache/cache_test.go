package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad_SecondCallServedFromCache(t *testing.T) {
	c := New[[]string](time.Minute)
	var loads int32
	loader := func(context.Context) ([]string, error) {
		atomic.AddInt32(&loads, 1)
		return []string{"Fruits and Vegetables", "Dairy"}, nil
	}

	first, err := c.GetOrLoad(context.Background(), "categories-list", loader)
	require.NoError(t, err)
	second, err := c.GetOrLoad(context.Background(), "categories-list", loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestGetOrLoad_ExpiredEntryTriggersExactlyOneReload(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	var loads int32
	loader := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&loads, 1)), nil
	}

	v, err := c.GetOrLoad(context.Background(), "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	time.Sleep(20 * time.Millisecond)

	v, err = c.GetOrLoad(context.Background(), "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestGetOrLoad_LoaderErrorNotCached(t *testing.T) {
	c := New[int](time.Minute)
	var loads int32
	boom := errors.New("storage unavailable")

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		atomic.AddInt32(&loads, 1)
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		atomic.AddInt32(&loads, 1)
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

// The stampede guard collapses concurrent misses on one key into a single
// loader invocation.
func TestGetOrLoad_ConcurrentMissesShareOneLoad(t *testing.T) {
	c := New[int](time.Minute)
	var loads int32
	loader := func(context.Context) (int, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(30 * time.Millisecond)
		return 42, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "hot-key", loader)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestGetOrLoad_KeysAreIsolated(t *testing.T) {
	c := New[string](time.Minute)
	blocked := make(chan struct{})

	go func() {
		_, _ = c.GetOrLoad(context.Background(), "slow", func(context.Context) (string, error) {
			<-blocked
			return "slow", nil
		})
	}()

	// A load in flight on "slow" must not block "fast".
	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := c.GetOrLoad(context.Background(), "fast", func(context.Context) (string, error) {
			return "fast", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "fast", v)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("load on an independent key was blocked")
	}
	close(blocked)
}

func TestInvalidate_ForcesReloadBeforeTTL(t *testing.T) {
	c := New[int](time.Hour)
	var loads int32
	loader := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&loads, 1)), nil
	}

	_, err := c.GetOrLoad(context.Background(), "products-list", loader)
	require.NoError(t, err)

	c.Invalidate("products-list", "products-list100")

	v, err := c.GetOrLoad(context.Background(), "products-list", loader)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate_UnknownKeyIsNoop(t *testing.T) {
	c := New[int](time.Minute)
	c.Invalidate("never-stored")
}
