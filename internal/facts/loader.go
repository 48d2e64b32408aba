// Package facts appends songplay rows with generated surrogate keys.
package facts

import (
	"context"
	"fmt"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// Loader assigns songplay ids and bulk-appends the rows of one file.
//
// Ids continue from the current maximum: a file's rows get max+1, max+2, ...
// or 0, 1, ... on an empty table. The loader takes the fact-table writer lock
// before reading the maximum so two loads never pick the same base.
type Loader struct {
	logger sparkify.Logger
}

// NewLoader creates a fact loader.
func NewLoader(logger sparkify.Logger) *Loader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{logger: logger}
}

// Load assigns ids to candidates in order and writes them with one COPY.
// It returns the number of rows written. Candidates are modified in place.
func (l *Loader) Load(ctx context.Context, store sparkify.Store, candidates []sparkify.Songplay) (int64, error) {
	if err := store.LockSongplays(ctx); err != nil {
		return 0, err
	}

	base, err := NextSongplayID(ctx, store)
	if err != nil {
		return 0, err
	}

	if len(candidates) == 0 {
		l.logger.Verbose("No songplays to load")
		return 0, nil
	}

	for i := range candidates {
		candidates[i].SongplayID = base + int64(i)
	}

	n, err := store.CopySongplays(ctx, candidates)
	if err != nil {
		return n, err
	}

	l.logger.Verbose("Loaded %d songplays (ids %d..%d)", n, base, base+n-1)
	return n, nil
}

// NextSongplayID returns the first free songplay id: max+1, or 0 when the
// table is empty.
func NextSongplayID(ctx context.Context, store sparkify.Store) (int64, error) {
	maxID, ok, err := store.MaxSongplayID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read songplay id base: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return maxID + 1, nil
}
