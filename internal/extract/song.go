package extract

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

var songRequiredKeys = []string{
	"song_id",
	"title",
	"artist_id",
	"artist_name",
	"artist_location",
	"artist_latitude",
	"artist_longitude",
	"year",
	"duration",
}

type songRecord struct {
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	ArtistID        string   `json:"artist_id"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
}

// SongFile is the parsed content of one song metadata file.
type SongFile struct {
	Song   sparkify.Song
	Artist sparkify.Artist

	// ExtraRecords counts non-blank lines after the first one. They are not loaded.
	ExtraRecords int
}

// ParseSongFile reads the first non-blank line of a song file.
// Every key of the song record must be present; location, latitude and
// longitude may be null. Errors wrap sparkify.ErrParse.
func ParseSongFile(content []byte) (SongFile, error) {
	lines := nonBlankLines(content)
	if len(lines) == 0 {
		return SongFile{}, fmt.Errorf("song file has no records: %w", sparkify.ErrParse)
	}
	first := lines[0]

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(first.data, &keys); err != nil {
		return SongFile{}, fmt.Errorf("line %d: invalid JSON: %w: %w", first.number, sparkify.ErrParse, err)
	}
	for _, key := range songRequiredKeys {
		if _, ok := keys[key]; !ok {
			return SongFile{}, fmt.Errorf("line %d: missing key %q: %w", first.number, key, sparkify.ErrParse)
		}
	}

	var rec songRecord
	if err := json.Unmarshal(first.data, &rec); err != nil {
		return SongFile{}, fmt.Errorf("line %d: %w: %w", first.number, sparkify.ErrParse, err)
	}

	return SongFile{
		Song: sparkify.Song{
			SongID:   rec.SongID,
			Title:    rec.Title,
			ArtistID: rec.ArtistID,
			Year:     rec.Year,
			Duration: rec.Duration,
		},
		Artist: sparkify.Artist{
			ArtistID:  rec.ArtistID,
			Name:      rec.ArtistName,
			Location:  rec.ArtistLocation,
			Latitude:  rec.ArtistLatitude,
			Longitude: rec.ArtistLongitude,
		},
		ExtraRecords: len(lines) - 1,
	}, nil
}
