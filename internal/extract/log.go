package extract

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

type logRecord struct {
	Page      *string  `json:"page"`
	TS        flexInt  `json:"ts"`
	UserID    flexInt  `json:"userId"`
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Gender    *string  `json:"gender"`
	Level     *string  `json:"level"`
	Song      *string  `json:"song"`
	Artist    *string  `json:"artist"`
	Length    *float64 `json:"length"`
	SessionID flexInt  `json:"sessionId"`
	UserAgent *string  `json:"userAgent"`
	Location  *string  `json:"location"`
}

// ParseLogFile decodes every non-blank line of an activity log file, in order.
// page and ts are required on every line; NextSong events also need a user
// and a session id. Errors wrap sparkify.ErrParse.
func ParseLogFile(content []byte) ([]sparkify.LogEvent, error) {
	lines := nonBlankLines(content)
	events := make([]sparkify.LogEvent, 0, len(lines))

	for _, ln := range lines {
		var rec logRecord
		if err := json.Unmarshal(ln.data, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", ln.number, sparkify.ErrParse, err)
		}
		if rec.Page == nil {
			return nil, fmt.Errorf("line %d: missing page: %w", ln.number, sparkify.ErrParse)
		}
		if !rec.TS.Valid {
			return nil, fmt.Errorf("line %d: missing ts: %w", ln.number, sparkify.ErrParse)
		}
		if *rec.Page == sparkify.NextSongPage {
			if !rec.UserID.Valid {
				return nil, fmt.Errorf("line %d: NextSong event without userId: %w", ln.number, sparkify.ErrParse)
			}
			if !rec.SessionID.Valid {
				return nil, fmt.Errorf("line %d: NextSong event without sessionId: %w", ln.number, sparkify.ErrParse)
			}
		}

		events = append(events, sparkify.LogEvent{
			Page:      *rec.Page,
			TS:        rec.TS.Value,
			UserID:    rec.UserID.ptr(),
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Gender:    rec.Gender,
			Level:     rec.Level,
			Song:      rec.Song,
			Artist:    rec.Artist,
			Length:    rec.Length,
			SessionID: rec.SessionID.ptr(),
			UserAgent: rec.UserAgent,
			Location:  rec.Location,
		})
	}

	return events, nil
}

// FilterNextSong keeps the events whose page is exactly "NextSong",
// preserving order.
func FilterNextSong(events []sparkify.LogEvent) []sparkify.LogEvent {
	plays := make([]sparkify.LogEvent, 0, len(events))
	for _, ev := range events {
		if ev.Page == sparkify.NextSongPage {
			plays = append(plays, ev)
		}
	}
	return plays
}

// ProjectUser extracts the user state carried by a NextSong event.
func ProjectUser(ev sparkify.LogEvent) sparkify.User {
	u := sparkify.User{
		FirstName: ev.FirstName,
		LastName:  ev.LastName,
		Gender:    ev.Gender,
	}
	if ev.UserID != nil {
		u.UserID = *ev.UserID
	}
	if ev.Level != nil {
		u.Level = *ev.Level
	}
	return u
}

// Songplay builds a fact candidate from a NextSong event and its resolved
// song reference. SongplayID is left for the fact loader to assign.
func Songplay(ev sparkify.LogEvent, ref sparkify.SongRef) sparkify.Songplay {
	sp := sparkify.Songplay{
		StartTime: ev.TS,
		SongID:    ref.SongID,
		ArtistID:  ref.ArtistID,
		UserAgent: ev.UserAgent,
		Location:  ev.Location,
	}
	if ev.UserID != nil {
		sp.UserID = *ev.UserID
	}
	if ev.SessionID != nil {
		sp.SessionID = *ev.SessionID
	}
	if ev.Level != nil {
		sp.Level = *ev.Level
	}
	return sp
}
