package schema

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source produces a fresh catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Catalog, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (*Catalog, error) {
	return f(ctx)
}

// FileSource loads a schema export from a local file. Non-fatal flattening
// problems are logged.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

// Load reads and flattens the file.
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, diags, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}

	logger := s.loggerOrNop()

	for _, d := range diags.All() {
		logger.Warn("schema diagnostic",
			zap.String("severity", d.Severity.String()),
			zap.String("code", d.Code),
			zap.String("class", d.Class),
			zap.String("message", d.Message))
	}

	return catalog, nil
}

func (s FileSource) loggerOrNop() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

type cacheEntry struct {
	catalog *Catalog
	loaded  time.Time
}

// Cache holds a single catalog for up to ttl. Readers never block on each
// other; an expired entry triggers one refresh shared by all waiting
// callers. A ttl <= 0 never expires.
type Cache struct {
	source Source
	ttl    time.Duration
	logger *zap.Logger

	entry atomic.Pointer[cacheEntry]
	group singleflight.Group
	now   func() time.Time
}

// NewCache creates a cache over source. logger may be nil.
func NewCache(source Source, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{
		source: source,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the cached catalog, refreshing it when missing or expired.
// If a refresh fails and a previous catalog exists, the stale catalog is
// returned.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	entry := c.entry.Load()
	if entry != nil && c.fresh(entry) {
		return entry.catalog, nil
	}

	ch := c.group.DoChan("catalog", func() (any, error) {
		// another caller may have refreshed while we waited
		if e := c.entry.Load(); e != nil && c.fresh(e) {
			return e, nil
		}

		catalog, err := c.source.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		e := &cacheEntry{catalog: catalog, loaded: c.now()}
		c.entry.Store(e)
		c.logger.Debug("schema catalog refreshed", zap.Int("classes", len(catalog.Classes)))

		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if entry != nil {
				c.logger.Warn("schema refresh failed, serving stale catalog", zap.Error(res.Err))
				return entry.catalog, nil
			}

			return nil, fmt.Errorf("failed to load schema catalog: %w", res.Err)
		}

		e, _ := res.Val.(*cacheEntry)

		return e.catalog, nil
	}
}

// Invalidate drops the cached catalog; the next Get reloads.
func (c *Cache) Invalidate() {
	c.entry.Store(nil)
}

func (c *Cache) fresh(e *cacheEntry) bool {
	if c.ttl <= 0 {
		return true
	}

	return c.now().Sub(e.loaded) < c.ttl
}
