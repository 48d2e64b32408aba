package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/locator"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/schema"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// recordingLogger keeps formatted Info and Error messages.
type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *recordingLogger) Verbose(string, ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

var _ sparkify.Logger = (*recordingLogger)(nil)

const (
	setantaSongFile = `{"num_songs": 1, "artist_id": "AR5KOSW1187FB35FF4", "artist_latitude": 49.80388, "artist_longitude": 15.47491, "artist_location": "Dubai UAE", "artist_name": "Elena", "song_id": "SOSVKTI12AF72A66FA", "title": "Setanta matins", "duration": 269.58322, "year": 0}`
	otherSongFile   = `{"num_songs": 1, "artist_id": "ARD7TVE1187B99BFB1", "artist_latitude": null, "artist_longitude": null, "artist_location": "California - LA", "artist_name": "Casual", "song_id": "SOMZWCG12A8C13C480", "title": "I Didn't Mean To", "duration": 218.93179, "year": 0}`
)

func logEvent(page string, ts int64, userID string, level string, song, artist string, length string) string {
	field := func(v string) string {
		if v == "" {
			return "null"
		}
		return fmt.Sprintf("%q", v)
	}
	num := func(v string) string {
		if v == "" {
			return "null"
		}
		return v
	}
	return fmt.Sprintf(
		`{"artist":%s,"auth":"Logged In","firstName":"Lily","gender":"F","lastName":"Koch","length":%s,"level":%q,"location":"Chicago-Naperville-Elgin, IL-IN-WI","page":%q,"sessionId":818,"song":%s,"ts":%d,"userAgent":"Mozilla/5.0","userId":%q}`,
		field(artist), num(length), level, page, field(song), ts, userID,
	)
}

func ndjson(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func memoryFS(files map[string]string) *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem()
	for path, content := range files {
		mfs.AddFile(path, content)
	}
	return mfs
}

func locatorFor(mfs *filesystem.MemoryFileSystem) sparkify.FileLocator {
	return locator.NewLocatorWithFS(mfs)
}

func defaultQueries() schema.Queries {
	return schema.Default()
}
