package store

import (
	"context"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
)

// Open creates the store selected by cfg.Store.Backend. Every backend but
// memory is wrapped in a [CachedStore] when cfg.Store.CacheSize is positive.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile, "":
		s, err = NewFileStore(cfg.Store.Dir)
	case config.BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
	case config.BackendS3:
		s, err = NewS3Store(cfg.S3)
	case config.BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Store.CacheSize > 0 {
		cached, err := NewCachedStore(s, cfg.Store.CacheSize)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		return cached, nil
	}
	return s, nil
}
