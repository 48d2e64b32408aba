package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/facts"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/logging"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/store"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

func newLogProcessor(mfs *filesystem.MemoryFileSystem) *LogProcessor {
	logger := logging.NewNullLogger()
	return NewLogProcessor(mfs, facts.NewLoader(logger), logger)
}

func TestLogProcessor_FiltersNextSong(t *testing.T) {
	content := ndjson(
		logEvent("Home", 1541990000000, "15", "paid", "", "", ""),
		logEvent("NextSong", 1541990258796, "15", "paid", "Song A", "Artist A", "100.5"),
		logEvent("Logout", 1541990300000, "15", "paid", "", "", ""),
		logEvent("NextSong", 1541990400000, "15", "paid", "Song B", "Artist B", "200.25"),
		logEvent("NextSong", 1541990500000, "15", "paid", "Song C", "Artist C", "300"),
	)
	mfs := memoryFS(map[string]string{"/log/e.json": content})
	ms := store.NewMemoryStore()

	require.NoError(t, newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json"))

	assert.Len(t, ms.Songplays, 3)
	assert.Len(t, ms.Times, 3)
	assert.Equal(t, 3, ms.CallCount("upsert_user"))
	for _, sp := range ms.Songplays {
		assert.Nil(t, sp.SongID)
	}

	bucket := ms.Times[1541990258796]
	assert.Equal(t, sparkify.TimeBucket{StartTime: 1541990258796, Hour: 2, Day: 12, Week: 46, Month: 11, Year: 2018, Weekday: 0}, bucket)
}

func TestLogProcessor_WriteOrder(t *testing.T) {
	content := ndjson(
		logEvent("NextSong", 1, "1", "free", "S", "A", "1.0"),
		logEvent("NextSong", 2, "2", "free", "S", "A", "1.0"),
	)
	mfs := memoryFS(map[string]string{"/log/e.json": content})
	ms := store.NewMemoryStore()

	require.NoError(t, newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json"))

	assert.Equal(t, []string{
		"insert_time", "insert_time",
		"upsert_user", "upsert_user",
		"select_song", "select_song",
		"lock_songplays", "max_songplay_id", "copy_songplays",
	}, ms.Calls)
}

func TestLogProcessor_LatestUserLevelWins(t *testing.T) {
	content := ndjson(
		logEvent("NextSong", 1, "42", "free", "", "", ""),
		logEvent("NextSong", 2, "42", "paid", "", "", ""),
	)
	mfs := memoryFS(map[string]string{"/log/e.json": content})
	ms := store.NewMemoryStore()

	require.NoError(t, newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json"))

	require.Contains(t, ms.Users, int64(42))
	assert.Equal(t, "paid", ms.Users[42].Level)
	assert.Equal(t, "Lily", *ms.Users[42].FirstName)
}

func TestLogProcessor_NullFieldsSkipLookup(t *testing.T) {
	content := ndjson(
		logEvent("NextSong", 1, "1", "free", "", "Artist", "1.0"),
		logEvent("NextSong", 2, "1", "free", "Song", "", "1.0"),
		logEvent("NextSong", 3, "1", "free", "Song", "Artist", ""),
	)
	mfs := memoryFS(map[string]string{"/log/e.json": content})
	ms := store.NewMemoryStore()

	require.NoError(t, newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json"))

	assert.Equal(t, 0, ms.CallCount("select_song"))
	require.Len(t, ms.Songplays, 3)
	for _, sp := range ms.Songplays {
		assert.Nil(t, sp.SongID)
		assert.Nil(t, sp.ArtistID)
	}
}

func TestLogProcessor_ResolvesKnownSong(t *testing.T) {
	mfs := memoryFS(map[string]string{
		"/song/a.json": setantaSongFile,
		"/log/e.json": ndjson(
			logEvent("NextSong", 1542837407796, "15", "paid", "Setanta matins", "Elena", "269.58322"),
			logEvent("NextSong", 1542837408796, "15", "paid", "Setanta matins", "Elena", "269.5"),
		),
	})
	ms := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, NewSongProcessor(mfs, logging.NewNullLogger()).ProcessFile(ctx, ms, "/song/a.json"))
	require.NoError(t, newLogProcessor(mfs).ProcessFile(ctx, ms, "/log/e.json"))

	require.Len(t, ms.Songplays, 2)
	require.NotNil(t, ms.Songplays[0].SongID)
	assert.Equal(t, "SOSVKTI12AF72A66FA", *ms.Songplays[0].SongID)
	assert.Equal(t, "AR5KOSW1187FB35FF4", *ms.Songplays[0].ArtistID)
	assert.Nil(t, ms.Songplays[1].SongID)
}

func TestLogProcessor_NoNextSongEventsLoadsNothing(t *testing.T) {
	mfs := memoryFS(map[string]string{"/log/e.json": ndjson(logEvent("Home", 1, "1", "free", "", "", ""))})
	ms := store.NewMemoryStore()

	require.NoError(t, newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json"))

	assert.Empty(t, ms.Songplays)
	assert.Empty(t, ms.Users)
	assert.Equal(t, 0, ms.CallCount("copy_songplays"))
}

func TestLogProcessor_ParseError(t *testing.T) {
	mfs := memoryFS(map[string]string{"/log/e.json": ndjson(`{"page":"NextSong","ts":1,"userId":""}`)})
	ms := store.NewMemoryStore()

	err := newLogProcessor(mfs).ProcessFile(context.Background(), ms, "/log/e.json")
	assert.ErrorIs(t, err, sparkify.ErrParse)
	assert.Empty(t, ms.Calls)
}
