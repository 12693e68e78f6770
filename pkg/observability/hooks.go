// Package observability provides hooks for logging and metrics.
//
// Libraries emit events through the registered hooks without depending on a
// particular backend. The CLI and server register implementations at
// startup; everything else sees no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    observability.SetEditHooks(&myEditHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	err := s.Put(ctx, name, data)
//	observability.Store().OnSave(ctx, s.Backend(), name, len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from map persistence.
type StoreHooks interface {
	// OnLoad records a map read. size is the encoded length in bytes.
	OnLoad(ctx context.Context, backend, name string, size int, duration time.Duration, err error)

	// OnSave records a map write.
	OnSave(ctx context.Context, backend, name string, size int, duration time.Duration, err error)

	// OnDelete records a map removal.
	OnDelete(ctx context.Context, backend, name string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the in-process map cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, name string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, name string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, name string, size int)
}

// =============================================================================
// Edit Hooks
// =============================================================================

// EditHooks receives events from an editing session.
type EditHooks interface {
	// OnPathCreated records a new path rooted at (x, y).
	OnPathCreated(ctx context.Context, paths int, x, y int)

	// OnConnect records a connection. merged is true when two paths were
	// folded into one.
	OnConnect(ctx context.Context, merged bool, added int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error)                   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopEditHooks is a no-op implementation of EditHooks.
type NoopEditHooks struct{}

func (NoopEditHooks) OnPathCreated(context.Context, int, int, int) {}
func (NoopEditHooks) OnConnect(context.Context, bool, int)         {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks StoreHooks = NoopStoreHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	editHooks  EditHooks  = NoopEditHooks{}
	hooksMu    sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetEditHooks registers custom edit hooks.
func SetEditHooks(h EditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Edit returns the registered edit hooks.
func Edit() EditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	cacheHooks = NoopCacheHooks{}
	editHooks = NoopEditHooks{}
}
