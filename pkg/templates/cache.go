package templates

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a successful list result stays fresh.
const DefaultTTL = 30 * time.Second

// Cache is a time-boxed read cache over a template Service.
//
// "My templates" and "shared templates" are cached independently, each
// with its own freshness stamp. Any successful mutation invalidates both;
// a failed mutation propagates its error and leaves cached state alone.
//
// Cache is safe for concurrent use.
type Cache struct {
	service Service
	ttl     time.Duration
	now     func() time.Time

	mu          sync.Mutex
	mine        []Template
	mineStamp   time.Time
	shared      []Template
	sharedStamp time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects a clock. Used by tests to control freshness.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache wraps a Service with a read cache.
func NewCache(service Service, opts ...CacheOption) *Cache {
	c := &Cache{
		service: service,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the caller's templates, from cache when fresh.
// force bypasses the cache unconditionally.
func (c *Cache) List(ctx context.Context, force bool) ([]Template, error) {
	c.mu.Lock()
	if !force && !c.mineStamp.IsZero() && c.now().Sub(c.mineStamp) < c.ttl {
		out := copyTemplates(c.mine)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	fetched, err := c.service.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.mine = fetched
	c.mineStamp = c.now()
	out := copyTemplates(c.mine)
	c.mu.Unlock()
	return out, nil
}

// ListShared returns public templates, from cache when fresh.
func (c *Cache) ListShared(ctx context.Context, force bool) ([]Template, error) {
	c.mu.Lock()
	if !force && !c.sharedStamp.IsZero() && c.now().Sub(c.sharedStamp) < c.ttl {
		out := copyTemplates(c.shared)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	fetched, err := c.service.ListShared(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.shared = fetched
	c.sharedStamp = c.now()
	out := copyTemplates(c.shared)
	c.mu.Unlock()
	return out, nil
}

// Get always hits the service; single templates are not cached.
func (c *Cache) Get(ctx context.Context, id string) (Template, error) {
	return c.service.Get(ctx, id)
}

// Create saves a template and invalidates the cache on success.
func (c *Cache) Create(ctx context.Context, t Template) (Template, error) {
	created, err := c.service.Create(ctx, t)
	if err != nil {
		return Template{}, err
	}
	c.invalidate()
	return created, nil
}

// Update overwrites a template and invalidates the cache on success.
func (c *Cache) Update(ctx context.Context, t Template) (Template, error) {
	updated, err := c.service.Update(ctx, t)
	if err != nil {
		return Template{}, err
	}
	c.invalidate()
	return updated, nil
}

// Delete removes a template and invalidates the cache on success.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.service.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

// Fork copies a template and invalidates the cache on success.
func (c *Cache) Fork(ctx context.Context, id string) (Template, error) {
	forked, err := c.service.Fork(ctx, id)
	if err != nil {
		return Template{}, err
	}
	c.invalidate()
	return forked, nil
}

// SetShared toggles visibility and invalidates the cache on success.
func (c *Cache) SetShared(ctx context.Context, id string, public bool) (Template, error) {
	updated, err := c.service.SetShared(ctx, id, public)
	if err != nil {
		return Template{}, err
	}
	c.invalidate()
	return updated, nil
}

// invalidate zeroes both freshness stamps so the next read refetches.
func (c *Cache) invalidate() {
	c.mu.Lock()
	c.mineStamp = time.Time{}
	c.sharedStamp = time.Time{}
	c.mu.Unlock()
}

// copyTemplates returns a shallow copy so callers can't mutate the cache.
func copyTemplates(in []Template) []Template {
	out := make([]Template, len(in))
	copy(out, in)
	return out
}
