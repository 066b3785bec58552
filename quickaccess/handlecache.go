package quickaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// handleKey identifies one cache slot. Handles are never shared across
// categories: a query handle for RecentFiles and one for FrequentFolders are
// distinct entries even though they share an operation kind.
type handleKey struct {
	kind OpKind
	cat  Category
}

// handleEntry is one cached execution handle. The ready channel closes when
// initialization finishes; handle/err are immutable afterwards.
type handleEntry struct {
	ready    chan struct{}
	handle   *ExecutionHandle
	err      error
	lastUsed time.Time // guarded by handleCache.mu
}

// handleCache lazily creates and reuses execution handles, one per
// (kind, category).
//
// At most one initialization runs concurrently per slot: the first caller
// performs the expensive setup on a governor worker while concurrent callers
// for the same slot wait on that single initialization. Callers for other
// slots proceed independently. Initialization is never performed inline on
// the waiting goroutine, which is what prevents the interpreter-spawn
// deadlock this layer exists for.
type handleCache struct {
	adapter Adapter
	gov     *governor
	log     *slog.Logger

	mu      sync.Mutex
	entries map[handleKey]*handleEntry
}

func newHandleCache(adapter Adapter, gov *governor, log *slog.Logger) *handleCache {
	return &handleCache{
		adapter: adapter,
		gov:     gov,
		log:     log,
		entries: make(map[handleKey]*handleEntry),
	}
}

// getOrCreate returns the cached handle for the slot, creating it on first
// use. A failed initialization is not cached: the entry is dropped so a later
// call can retry.
func (c *handleCache) getOrCreate(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
	key := handleKey{kind: kind, cat: cat}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		c.touch(key)
		return e.handle, nil
	}

	e := &handleEntry{ready: make(chan struct{}), lastUsed: time.Now()}
	c.entries[key] = e
	c.mu.Unlock()

	h, err := govern(ctx, c.gov, kind, func(ctx context.Context) (*ExecutionHandle, error) {
		return c.adapter.NewExecutionHandle(ctx, kind, cat)
	})
	if err != nil && !errors.Is(err, ErrTimeout) && !errors.Is(err, context.Canceled) {
		err = fmt.Errorf("%w: %s/%s: %v", ErrHandleCreate, kind, cat, err)
	}
	e.handle, e.err = h, err
	close(e.ready)

	if err != nil {
		c.log.Warn("execution handle creation failed", "kind", kind.String(), "category", cat.String(), "error", err)
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, err
	}

	c.log.Debug("execution handle created", "kind", kind.String(), "category", cat.String())
	return h, nil
}

func (c *handleCache) touch(key handleKey) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.lastUsed = time.Now()
	}
	c.mu.Unlock()
}

// invalidate drops one slot, forcing re-creation on next use.
func (c *handleCache) invalidate(kind OpKind, cat Category) {
	key := handleKey{kind: kind, cat: cat}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.log.Debug("execution handle invalidated", "kind", kind.String(), "category", cat.String())
}

// invalidateAll drops every slot. Called after a policy fix: handles created
// under the stale policy must not be reused.
func (c *handleCache) invalidateAll() {
	c.mu.Lock()
	c.entries = make(map[handleKey]*handleEntry)
	c.mu.Unlock()
	c.log.Debug("execution handle cache cleared")
}
