package store

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
	"github.com/matzehuels/pathmaker/pkg/observability"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
)

// Save encodes b and stores it under the normalized form of name, which it
// returns. A bundle without waypoints is not saved and yields an
// INVALID_INPUT error.
func Save(ctx context.Context, s Store, name string, b *pathgraph.Bundle) (string, error) {
	name, err := errors.NormalizeMapName(name)
	if err != nil {
		return "", err
	}
	if b == nil || b.IsEmpty() {
		return name, errors.New(errors.ErrCodeInvalidInput, "map %s has no waypoints, nothing to save", name)
	}

	data := mapfile.Marshal(b)
	start := time.Now()
	err = s.Put(ctx, name, data)
	observability.Store().OnSave(ctx, s.Backend(), name, len(data), time.Since(start), err)
	return name, err
}

// Load reads and decodes the map stored under the normalized form of name.
// The bundle is only returned if the whole map decodes.
func Load(ctx context.Context, s Store, name string) (*pathgraph.Bundle, error) {
	name, err := errors.NormalizeMapName(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.Get(ctx, name)
	if err == nil {
		var b *pathgraph.Bundle
		if b, err = mapfile.Unmarshal(data); err == nil {
			observability.Store().OnLoad(ctx, s.Backend(), name, len(data), time.Since(start), nil)
			return b, nil
		}
		err = fmt.Errorf("map %s: %w", name, err)
	}
	observability.Store().OnLoad(ctx, s.Backend(), name, len(data), time.Since(start), err)
	return nil, err
}

// Remove deletes the map stored under the normalized form of name.
func Remove(ctx context.Context, s Store, name string) (string, error) {
	name, err := errors.NormalizeMapName(name)
	if err != nil {
		return "", err
	}
	err = s.Delete(ctx, name)
	observability.Store().OnDelete(ctx, s.Backend(), name, err)
	return name, err
}
