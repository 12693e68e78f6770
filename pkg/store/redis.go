package store

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
)

// RedisStore keeps each map under its own key and tracks the names in a set.
//
// Keys are laid out as:
//
//	<prefix>map:<name>   map text
//	<prefix>maps         set of names
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(name string) string { return s.prefix + "map:" + name }
func (s *RedisStore) index() string          { return s.prefix + "maps" }

// Get returns the map text.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateMapName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := retry(ctx, func() error {
		v, err := s.client.Get(ctx, s.key(name)).Bytes()
		if err == redis.Nil {
			return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "redis get %s", name))
		}
		data = v
		return nil
	})
	return data, err
}

// Put stores the map text and records the name in one transaction.
func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	return retry(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(name), data, 0)
			pipe.SAdd(ctx, s.index(), name)
			return nil
		})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "redis put %s", name))
		}
		return nil
	})
}

// Delete removes the map text and its name.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMapName(name); err != nil {
		return err
	}
	return retry(ctx, func() error {
		var del *redis.IntCmd
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			del = pipe.Del(ctx, s.key(name))
			pipe.SRem(ctx, s.index(), name)
			return nil
		})
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "redis delete %s", name))
		}
		if del.Val() == 0 {
			return errors.New(errors.ErrCodeNotFound, "map %s not found", name)
		}
		return nil
	})
}

// List returns the recorded names in lexical order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := retry(ctx, func() error {
		v, err := s.client.SMembers(ctx, s.index()).Result()
		if err != nil {
			return retryable(errors.Wrap(errors.ErrCodeStorage, err, "redis list"))
		}
		names = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Backend returns "redis:" followed by the server address.
func (s *RedisStore) Backend() string { return "redis:" + s.client.Options().Addr }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
