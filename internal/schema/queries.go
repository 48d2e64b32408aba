package schema

// Query is a named, versioned SQL statement. Version changes whenever the
// statement text changes in a way callers could observe.
type Query struct {
	Name    string
	Version int
	SQL     string
}

func (q Query) String() string {
	return q.Name
}

// Queries is the full set of statements the loader issues. A store is built
// from one Queries value so statements can be swapped in tests.
type Queries struct {
	InsertSong    Query
	InsertArtist  Query
	UpsertUser    Query
	InsertTime    Query
	SelectSong    Query
	MaxSongplayID Query
	LockSongplays Query

	// SongplaysTable and SongplayColumns describe the COPY target.
	SongplaysTable  string
	SongplayColumns []string
}

// SongplayLockKey identifies the advisory lock that serializes fact loads.
const SongplayLockKey int64 = 0x5350_4c59 // "SPLY"

// Default returns the statements for the schema in create_tables.sql.
func Default() Queries {
	return Queries{
		InsertSong: Query{
			Name:    "insert_song",
			Version: 1,
			SQL: `INSERT INTO songs (song_id, title, artist_id, year, duration)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (song_id) DO NOTHING`,
		},
		InsertArtist: Query{
			Name:    "insert_artist",
			Version: 1,
			SQL: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (artist_id) DO NOTHING`,
		},
		UpsertUser: Query{
			Name:    "upsert_user",
			Version: 1,
			SQL: `INSERT INTO users (user_id, first_name, last_name, gender, level)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
    level = excluded.level,
    first_name = excluded.first_name,
    last_name = excluded.last_name,
    gender = excluded.gender`,
		},
		InsertTime: Query{
			Name:    "insert_time",
			Version: 1,
			SQL: `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (start_time) DO NOTHING`,
		},
		SelectSong: Query{
			Name:    "select_song",
			Version: 2,
			SQL: `SELECT s.song_id, s.artist_id
FROM songs s
JOIN artists a ON a.artist_id = s.artist_id
WHERE s.title = $1 AND a.name = $2 AND s.duration = $3
LIMIT 1`,
		},
		MaxSongplayID: Query{
			Name:    "max_songplay_id",
			Version: 1,
			SQL:     `SELECT max(songplay_id) FROM songplays`,
		},
		LockSongplays: Query{
			Name:    "lock_songplays",
			Version: 1,
			SQL:     `SELECT pg_advisory_xact_lock($1)`,
		},
		SongplaysTable: "songplays",
		SongplayColumns: []string{
			"songplay_id", "start_time", "user_id", "song_id", "artist_id",
			"session_id", "user_agent", "level", "location",
		},
	}
}
