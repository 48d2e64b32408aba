// Package store implements sparkify.Store on top of a pgx transaction.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/schema"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// DBTX is the subset of pgx.Tx the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store issues the queries of a schema.Queries set against one transaction.
type Store struct {
	db      DBTX
	queries schema.Queries
}

// New binds a Store to db.
func New(db DBTX, queries schema.Queries) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Store{db: db, queries: queries}
}

func (s *Store) exec(ctx context.Context, q schema.Query, args ...any) error {
	if _, err := s.db.Exec(ctx, q.SQL, args...); err != nil {
		return queryError(q, err)
	}
	return nil
}

func queryError(q schema.Query, err error) error {
	return fmt.Errorf("%s (v%d) failed: %w: %w", q.Name, q.Version, sparkify.ErrLoadFailed, err)
}

// InsertSong adds a song row, ignoring an existing song_id.
func (s *Store) InsertSong(ctx context.Context, song sparkify.Song) error {
	return s.exec(ctx, s.queries.InsertSong,
		song.SongID, song.Title, song.ArtistID, song.Year, song.Duration)
}

// InsertArtist adds an artist row, ignoring an existing artist_id.
func (s *Store) InsertArtist(ctx context.Context, artist sparkify.Artist) error {
	return s.exec(ctx, s.queries.InsertArtist,
		artist.ArtistID, artist.Name, artist.Location, artist.Latitude, artist.Longitude)
}

// UpsertUser inserts a user or overwrites the stored one with the same user_id.
func (s *Store) UpsertUser(ctx context.Context, user sparkify.User) error {
	return s.exec(ctx, s.queries.UpsertUser,
		user.UserID, user.FirstName, user.LastName, user.Gender, user.Level)
}

// InsertTime adds a time bucket, ignoring an existing start_time.
func (s *Store) InsertTime(ctx context.Context, b sparkify.TimeBucket) error {
	return s.exec(ctx, s.queries.InsertTime,
		b.StartTime, b.Hour, b.Day, b.Week, b.Month, b.Year, b.Weekday)
}

// ResolveSong looks up the song and artist ids for an exact title, artist
// name and duration match. No match returns an empty SongRef and no error.
func (s *Store) ResolveSong(ctx context.Context, title, artistName string, duration float64) (sparkify.SongRef, error) {
	var ref sparkify.SongRef
	err := s.db.QueryRow(ctx, s.queries.SelectSong.SQL, title, artistName, duration).
		Scan(&ref.SongID, &ref.ArtistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return sparkify.SongRef{}, nil
	}
	if err != nil {
		return sparkify.SongRef{}, queryError(s.queries.SelectSong, err)
	}
	return ref, nil
}

// LockSongplays takes the transaction-scoped advisory lock guarding songplay ids.
func (s *Store) LockSongplays(ctx context.Context) error {
	return s.exec(ctx, s.queries.LockSongplays, schema.SongplayLockKey)
}

// MaxSongplayID returns the largest songplay_id and false when the table is empty.
func (s *Store) MaxSongplayID(ctx context.Context) (int64, bool, error) {
	var maxID *int64
	if err := s.db.QueryRow(ctx, s.queries.MaxSongplayID.SQL).Scan(&maxID); err != nil {
		return 0, false, queryError(s.queries.MaxSongplayID, err)
	}
	if maxID == nil {
		return 0, false, nil
	}
	return *maxID, true, nil
}

// CopySongplays bulk appends rows to songplays with COPY.
func (s *Store) CopySongplays(ctx context.Context, rows []sparkify.Songplay) (int64, error) {
	src := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		r := rows[i]
		return []any{
			r.SongplayID, r.StartTime, r.UserID, r.SongID, r.ArtistID,
			r.SessionID, r.UserAgent, r.Level, r.Location,
		}, nil
	})

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{s.queries.SongplaysTable}, s.queries.SongplayColumns, src)
	if err != nil {
		return n, fmt.Errorf("copy into %s failed: %w: %w", s.queries.SongplaysTable, sparkify.ErrLoadFailed, err)
	}
	if n != int64(len(rows)) {
		return n, fmt.Errorf("copy into %s wrote %d of %d rows: %w", s.queries.SongplaysTable, n, len(rows), sparkify.ErrLoadFailed)
	}
	return n, nil
}

var _ sparkify.Store = (*Store)(nil)
