package sparkify

import "context"

// Store is the set of writes and lookups the ETL issues against one open
// transaction. Implementations are bound to that transaction and are not safe
// for concurrent use.
type Store interface {
	// InsertSong inserts a song; an existing song_id is left untouched.
	InsertSong(ctx context.Context, song Song) error

	// InsertArtist inserts an artist; an existing artist_id is left untouched.
	InsertArtist(ctx context.Context, artist Artist) error

	// UpsertUser inserts a user or overwrites name, gender and level of an
	// existing one.
	UpsertUser(ctx context.Context, user User) error

	// InsertTime inserts a time bucket; an existing start_time is left untouched.
	InsertTime(ctx context.Context, bucket TimeBucket) error

	// ResolveSong looks up song and artist ids by exact title, artist name and
	// duration. A miss returns an empty SongRef and no error.
	ResolveSong(ctx context.Context, title, artistName string, duration float64) (SongRef, error)

	// LockSongplays blocks until this transaction holds the fact-table writer
	// lock. The lock is released on commit or rollback.
	LockSongplays(ctx context.Context) error

	// MaxSongplayID returns the highest songplay_id, and false when the fact
	// table is empty.
	MaxSongplayID(ctx context.Context) (int64, bool, error)

	// CopySongplays appends rows to the fact table in a single bulk operation
	// and returns the number of rows written.
	CopySongplays(ctx context.Context, rows []Songplay) (int64, error)
}

// Transactor runs a unit of work inside one database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// FileProcessor loads one input file through the given store.
type FileProcessor interface {
	ProcessFile(ctx context.Context, store Store, path string) error
}
