// Package sqlite provides the public API for the SQLite journal store.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"context"

	"github.com/mesh-intelligence/journal/internal/sqlite"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Open opens (creating if needed) the journal store described by config.
// The caller must Close the returned Journal.
//
// Example:
//
//	j, err := sqlite.Open(ctx, types.DefaultConfig(dataDir))
//	if err != nil {
//	    return err
//	}
//	defer j.Close()
func Open(ctx context.Context, config types.Config) (types.Journal, error) {
	s, err := sqlite.Open(ctx, config)
	if err != nil {
		return nil, err
	}
	return s, nil
}
