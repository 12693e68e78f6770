// Package store persists encoded maps by name.
//
// # Backends
//
// Every backend implements [Store] and stores the raw map text produced by
// the mapfile package:
//   - memory: in-process map for tests and the development server
//   - file: one file per map in a directory, written atomically
//   - redis: one key per map plus a set of names
//   - s3: one object per map in an S3-compatible bucket
//   - mongo: one document per map, keyed by name
//
// [CachedStore] adds an in-process LRU cache in front of any backend and
// [Open] builds the backend selected by the configuration.
//
// # Maps
//
// [Save], [Load] and [Remove] work on bundles rather than bytes. They
// normalize the map name (appending ".map" when it has no extension),
// encode or decode the bundle and report to the registered
// observability.StoreHooks.
//
//	s, err := store.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	name, err := store.Save(ctx, s, "campus", bundle)
//	b, err := store.Load(ctx, s, name)
//
// A missing map yields a NOT_FOUND error and a corrupt one a MALFORMED_MAP
// error; callers that only care whether there is something to load can
// treat both the same way.
package store

import "context"

// Store is a named blob store for encoded maps.
//
// Names are expected to be valid map names (see errors.ValidateMapName);
// backends reject anything else with INVALID_NAME.
type Store interface {
	// Get returns the stored data, or a NOT_FOUND error.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put stores data under name, replacing any previous value.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes name, or returns a NOT_FOUND error.
	Delete(ctx context.Context, name string) error

	// List returns every stored name in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error

	// Backend returns a short backend description for logs.
	Backend() string
}
