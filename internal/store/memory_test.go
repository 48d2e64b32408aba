package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

func TestMemoryTransactor_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	tx := NewMemoryTransactor(ms)

	err := tx.WithinTransaction(ctx, func(ctx context.Context, s sparkify.Store) error {
		return s.InsertSong(ctx, sparkify.Song{SongID: "SO1"})
	})
	require.NoError(t, err)

	err = tx.WithinTransaction(ctx, func(ctx context.Context, s sparkify.Store) error {
		require.NoError(t, s.InsertSong(ctx, sparkify.Song{SongID: "SO2"}))
		return errors.New("abort")
	})
	require.Error(t, err)

	assert.Len(t, ms.Songs, 1)
	assert.Contains(t, ms.Songs, "SO1")
	assert.Equal(t, 1, tx.Commits)
	assert.Equal(t, 1, tx.Rollbacks)
}

func TestMemoryStore_CopyRejectsDuplicateIDs(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	_, err := ms.CopySongplays(ctx, []sparkify.Songplay{{SongplayID: 0}})
	require.NoError(t, err)

	_, err = ms.CopySongplays(ctx, []sparkify.Songplay{{SongplayID: 1}, {SongplayID: 0}})
	assert.ErrorIs(t, err, sparkify.ErrLoadFailed)
	assert.Len(t, ms.Songplays, 1)
}
