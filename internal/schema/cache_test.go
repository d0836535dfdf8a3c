package schema

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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func countingSource(loads *atomic.Int32, fail *atomic.Bool) Source {
	return SourceFunc(func(context.Context) (*Catalog, error) {
		loads.Add(1)

		if fail != nil && fail.Load() {
			return nil, errors.New("registry down")
		}

		return NewCatalog(), nil
	})
}

func newTestCache(src Source, ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(src, ttl, nil)
	c.now = clock.Now

	return c, clock
}

func TestCache_HitAndExpiry(t *testing.T) {
	var loads atomic.Int32

	c, clock := newTestCache(countingSource(&loads, nil), time.Minute)
	ctx := context.Background()

	first, err := c.Get(ctx)
	require.NoError(t, err)

	second, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loads.Load())

	clock.Advance(59 * time.Second)
	_, _ = c.Get(ctx)
	assert.Equal(t, int32(1), loads.Load())

	clock.Advance(time.Second)
	third, err := c.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int32(2), loads.Load())
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	var loads atomic.Int32

	c, clock := newTestCache(countingSource(&loads, nil), 0)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)

	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_Invalidate(t *testing.T) {
	var loads atomic.Int32

	c, _ := newTestCache(countingSource(&loads, nil), time.Hour)

	_, _ = c.Get(context.Background())
	c.Invalidate()
	_, _ = c.Get(context.Background())

	assert.Equal(t, int32(2), loads.Load())
}

func TestCache_StaleOnError(t *testing.T) {
	var (
		loads atomic.Int32
		fail  atomic.Bool
	)

	c, clock := newTestCache(countingSource(&loads, &fail), time.Minute)

	first, err := c.Get(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	clock.Advance(time.Hour)

	stale, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestCache_ErrorWithoutEntry(t *testing.T) {
	var (
		loads atomic.Int32
		fail  atomic.Bool
	)

	fail.Store(true)

	c, _ := newTestCache(countingSource(&loads, &fail), time.Minute)

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry down")
}

func TestCache_SingleRefreshInFlight(t *testing.T) {
	var loads atomic.Int32

	release := make(chan struct{})
	src := SourceFunc(func(context.Context) (*Catalog, error) {
		loads.Add(1)
		<-release

		return NewCatalog(), nil
	})

	c, _ := newTestCache(src, time.Hour)

	const readers = 16

	var wg sync.WaitGroup

	results := make([]*Catalog, readers)

	for i := 0; i < readers; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			cat, err := c.Get(context.Background())
			assert.NoError(t, err)

			results[i] = cat
		}()
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestCache_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	src := SourceFunc(func(context.Context) (*Catalog, error) {
		<-release
		return NewCatalog(), nil
	})

	c, _ := newTestCache(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileSource(t *testing.T) {
	c := NewCache(FileSource{Path: "testdata/mini_schema.json"}, time.Minute, nil)

	catalog, err := c.Get(context.Background())
	require.NoError(t, err)

	_, ok := catalog.Class("authentication")
	assert.True(t, ok)

	_, err = FileSource{Path: "testdata/missing.json"}.Load(context.Background())
	assert.Error(t, err)
}
