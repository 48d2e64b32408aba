package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// MemoryStore is an in-memory sparkify.Store with the same conflict rules as
// the SQL queries. It records every call so tests can assert ordering.
type MemoryStore struct {
	Songs     map[string]sparkify.Song
	Artists   map[string]sparkify.Artist
	Users     map[int64]sparkify.User
	Times     map[int64]sparkify.TimeBucket
	Songplays []sparkify.Songplay

	// Calls lists operation names in call order.
	Calls []string

	// FailOn makes the named operation return the given error.
	FailOn map[string]error

	songOrder []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Songs:   make(map[string]sparkify.Song),
		Artists: make(map[string]sparkify.Artist),
		Users:   make(map[int64]sparkify.User),
		Times:   make(map[int64]sparkify.TimeBucket),
		FailOn:  make(map[string]error),
	}
}

func (m *MemoryStore) call(op string) error {
	m.Calls = append(m.Calls, op)
	if err, ok := m.FailOn[op]; ok {
		return fmt.Errorf("%s failed: %w: %w", op, sparkify.ErrLoadFailed, err)
	}
	return nil
}

// CallCount returns how many times op was called.
func (m *MemoryStore) CallCount(op string) int {
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *MemoryStore) InsertSong(_ context.Context, song sparkify.Song) error {
	if err := m.call("insert_song"); err != nil {
		return err
	}
	if _, exists := m.Songs[song.SongID]; !exists {
		m.Songs[song.SongID] = song
		m.songOrder = append(m.songOrder, song.SongID)
	}
	return nil
}

func (m *MemoryStore) InsertArtist(_ context.Context, artist sparkify.Artist) error {
	if err := m.call("insert_artist"); err != nil {
		return err
	}
	if _, exists := m.Artists[artist.ArtistID]; !exists {
		m.Artists[artist.ArtistID] = artist
	}
	return nil
}

func (m *MemoryStore) UpsertUser(_ context.Context, user sparkify.User) error {
	if err := m.call("upsert_user"); err != nil {
		return err
	}
	m.Users[user.UserID] = user
	return nil
}

func (m *MemoryStore) InsertTime(_ context.Context, bucket sparkify.TimeBucket) error {
	if err := m.call("insert_time"); err != nil {
		return err
	}
	if _, exists := m.Times[bucket.StartTime]; !exists {
		m.Times[bucket.StartTime] = bucket
	}
	return nil
}

func (m *MemoryStore) ResolveSong(_ context.Context, title, artistName string, duration float64) (sparkify.SongRef, error) {
	if err := m.call("select_song"); err != nil {
		return sparkify.SongRef{}, err
	}
	for _, id := range m.songOrder {
		song := m.Songs[id]
		artist, ok := m.Artists[song.ArtistID]
		if !ok || song.Title != title || artist.Name != artistName || song.Duration != duration {
			continue
		}
		songID, artistID := song.SongID, song.ArtistID
		return sparkify.SongRef{SongID: &songID, ArtistID: &artistID}, nil
	}
	return sparkify.SongRef{}, nil
}

func (m *MemoryStore) LockSongplays(context.Context) error {
	return m.call("lock_songplays")
}

func (m *MemoryStore) MaxSongplayID(context.Context) (int64, bool, error) {
	if err := m.call("max_songplay_id"); err != nil {
		return 0, false, err
	}
	if len(m.Songplays) == 0 {
		return 0, false, nil
	}
	maxID := m.Songplays[0].SongplayID
	for _, sp := range m.Songplays[1:] {
		if sp.SongplayID > maxID {
			maxID = sp.SongplayID
		}
	}
	return maxID, true, nil
}

func (m *MemoryStore) CopySongplays(_ context.Context, rows []sparkify.Songplay) (int64, error) {
	if err := m.call("copy_songplays"); err != nil {
		return 0, err
	}
	seen := make(map[int64]bool, len(m.Songplays)+len(rows))
	for _, sp := range m.Songplays {
		seen[sp.SongplayID] = true
	}
	for _, r := range rows {
		if seen[r.SongplayID] {
			return 0, fmt.Errorf("duplicate songplay_id %d: %w", r.SongplayID, sparkify.ErrLoadFailed)
		}
		seen[r.SongplayID] = true
	}
	m.Songplays = append(m.Songplays, rows...)
	return int64(len(rows)), nil
}

func (m *MemoryStore) snapshot() *MemoryStore {
	c := NewMemoryStore()
	for k, v := range m.Songs {
		c.Songs[k] = v
	}
	for k, v := range m.Artists {
		c.Artists[k] = v
	}
	for k, v := range m.Users {
		c.Users[k] = v
	}
	for k, v := range m.Times {
		c.Times[k] = v
	}
	c.Songplays = append(c.Songplays, m.Songplays...)
	c.songOrder = append(c.songOrder, m.songOrder...)
	return c
}

func (m *MemoryStore) restore(s *MemoryStore) {
	m.Songs, m.Artists, m.Users, m.Times = s.Songs, s.Artists, s.Users, s.Times
	m.Songplays, m.songOrder = s.Songplays, s.songOrder
}

// MemoryTransactor runs units of work against a MemoryStore and discards
// their writes when they fail.
type MemoryTransactor struct {
	mu    sync.Mutex
	Store *MemoryStore

	Commits   int
	Rollbacks int
}

// NewMemoryTransactor wraps store.
func NewMemoryTransactor(store *MemoryStore) *MemoryTransactor {
	return &MemoryTransactor{Store: store}
}

func (t *MemoryTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store sparkify.Store) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved := t.Store.snapshot()
	if err := fn(ctx, t.Store); err != nil {
		t.Store.restore(saved)
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}

var (
	_ sparkify.Store      = (*MemoryStore)(nil)
	_ sparkify.Transactor = (*MemoryTransactor)(nil)
)
