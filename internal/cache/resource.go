// Package cache provides the TTL-memoized remote resource used by every
// client-side store: serve the in-memory copy while fresh, hit the network
// otherwise, and degrade to the last persisted snapshot when the network
// fails. One parametrized implementation replaces the per-resource copies
// that used to drift apart.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/misanthropic-codes/sports360/internal/domain"
)

// FetchFunc loads the resource from the network
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource is one cached remote resource. Concurrent Gets while a fetch is
// in flight share that fetch: the pending call is the cache key, so a
// double-tap refresh costs one network round trip.
type Resource[T any] struct {
	name      string
	ttl       time.Duration
	fetch     FetchFunc[T]
	snapshots domain.Snapshots // nil disables the persisted fallback
	logger    *slog.Logger
	now       func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	data      T
	hasData   bool
	fetchedAt time.Time // zero until the first successful fetch
	loading   bool
	lastErr   error
}

// New creates a cached resource. name doubles as the snapshot key and the
// in-flight dedup key, so it must be unique per resource.
func New[T any](name string, ttl time.Duration, fetch FetchFunc[T], snapshots domain.Snapshots, logger *slog.Logger) *Resource[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resource[T]{
		name:      name,
		ttl:       ttl,
		fetch:     fetch,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the freshest available copy of the resource. With force false
// a fresh cache entry is served without a network call; otherwise the fetch
// runs (deduplicated across concurrent callers). On fetch failure Get
// returns the best data it has, stale snapshot included, together with the
// error; previously loaded data is never wiped.
func (r *Resource[T]) Get(ctx context.Context, force bool) (T, error) {
	r.mu.Lock()
	if !force && r.fresh() {
		data := r.data
		r.mu.Unlock()
		r.logger.Debug("cache hit", "resource", r.name)
		return data, nil
	}
	r.mu.Unlock()

	v, err, shared := r.group.Do(r.name, func() (any, error) {
		return r.refresh(ctx)
	})
	if shared {
		r.logger.Debug("joined in-flight fetch", "resource", r.name)
	}

	data, _ := v.(T)
	return data, err
}

// refresh performs the actual network fetch. Runs at most once per
// in-flight window, under the singleflight group.
func (r *Resource[T]) refresh(ctx context.Context) (T, error) {
	r.mu.Lock()
	r.loading = true
	r.lastErr = nil
	r.mu.Unlock()

	fetched, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.lastErr = err
		// Stale-but-available: fall back to the last persisted snapshot.
		// In-memory data stays untouched when no snapshot exists.
		if r.snapshots != nil {
			var snap T
			if r.snapshots.LoadSnapshot(r.name, &snap) {
				r.data = snap
				r.hasData = true
				r.logger.Warn("fetch failed, serving persisted snapshot", "resource", r.name, "error", err)
				return snap, err
			}
		}
		r.logger.Error("fetch failed", "resource", r.name, "error", err)
		return r.data, err
	}

	// An empty payload is valid, cacheable data; only a failed fetch is not.
	r.data = fetched
	r.hasData = true
	r.fetchedAt = r.now()

	if r.snapshots != nil {
		if err := r.snapshots.SaveSnapshot(r.name, fetched); err != nil {
			r.logger.Error("failed to persist snapshot", "resource", r.name, "error", err)
		}
	}

	r.logger.Debug("fetched", "resource", r.name)
	return fetched, nil
}

// fresh reports whether the cached copy can be served without a network
// call. Caller must hold mu. fetchedAt moves only on successful fetches,
// so snapshot fallbacks and optimistic edits never count as fresh.
func (r *Resource[T]) fresh() bool {
	return r.hasData && !r.fetchedAt.IsZero() && r.now().Sub(r.fetchedAt) < r.ttl
}

// Invalidate clears the freshness timestamp without touching data, forcing
// the next Get to hit the network. Called after mutations so the next read
// reconciles with the server.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.fetchedAt = time.Time{}
	r.mu.Unlock()
	r.logger.Debug("invalidated", "resource", r.name)
}

// Mutate applies an optimistic local edit. The edit is not persisted and
// not rolled back; the next Invalidate+Get cycle reconciles with the
// server.
func (r *Resource[T]) Mutate(fn func(T) T) {
	r.mu.Lock()
	r.data = fn(r.data)
	r.hasData = true
	r.mu.Unlock()
}

// Peek returns the current in-memory copy without triggering a fetch
func (r *Resource[T]) Peek() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.hasData
}

// Loading reports whether a fetch is currently in flight
func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// LastError returns the most recent fetch failure, cleared on the next
// fetch attempt
func (r *Resource[T]) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// FetchedAt returns the time of the last successful fetch (zero if none)
func (r *Resource[T]) FetchedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetchedAt
}
