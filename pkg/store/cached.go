package store

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/observability"
)

// CachedStore is a read-through LRU cache of map text in front of another
// store. Writes and deletes go to the inner store first and then update the
// cache, so a failed write never leaves stale data cached.
type CachedStore struct {
	inner Store
	cache *lru.Cache[string, []byte]
}

// NewCachedStore wraps inner with a cache of at most size maps.
func NewCachedStore(inner Store, size int) (*CachedStore, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create map cache")
	}
	return &CachedStore{inner: inner, cache: cache}, nil
}

// Get serves from the cache or falls through to the inner store.
func (s *CachedStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		observability.Cache().OnCacheHit(ctx, name)
		return slices.Clone(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, name)

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Add(name, slices.Clone(data))
	observability.Cache().OnCacheSet(ctx, name, len(data))
	return data, nil
}

// Put writes through to the inner store.
func (s *CachedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		s.cache.Remove(name)
		return err
	}
	s.cache.Add(name, slices.Clone(data))
	observability.Cache().OnCacheSet(ctx, name, len(data))
	return nil
}

// Delete removes name from the inner store and the cache.
func (s *CachedStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is always answered by the inner store.
func (s *CachedStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

// Len returns the number of cached maps.
func (s *CachedStore) Len() int { return s.cache.Len() }

// Close purges the cache and closes the inner store.
func (s *CachedStore) Close() error {
	s.cache.Purge()
	return s.inner.Close()
}

// Backend returns the inner backend with a "+lru" suffix.
func (s *CachedStore) Backend() string { return s.inner.Backend() + "+lru" }

// Ensure CachedStore implements Store.
var _ Store = (*CachedStore)(nil)
