package sparkify

import (
	"errors"
	"fmt"
	"time"
)

// Song is a row of the songs dimension.
type Song struct {
	SongID   string
	Title    string
	ArtistID string
	Year     int
	Duration float64 // seconds
}

// Artist is a row of the artists dimension.
// Location, Latitude and Longitude are nil when the source record carries null.
type Artist struct {
	ArtistID  string
	Name      string
	Location  *string
	Latitude  *float64
	Longitude *float64
}

// User is the current known state of a user. Later occurrences overwrite
// earlier ones.
type User struct {
	UserID    int64
	FirstName *string
	LastName  *string
	Gender    *string
	Level     string
}

// TimeBucket is a calendar breakdown of a songplay start time.
// Weekday counts from Monday (0) to Sunday (6).
type TimeBucket struct {
	StartTime int64 // epoch milliseconds
	Hour      int
	Day       int
	Week      int // ISO 8601 week of year
	Month     int
	Year      int
	Weekday   int
}

// LogEvent is one line of an activity log file. Fields that are not present
// on every event type are pointers.
type LogEvent struct {
	Page      string
	TS        int64 // epoch milliseconds
	UserID    *int64
	FirstName *string
	LastName  *string
	Gender    *string
	Level     *string
	Song      *string
	Artist    *string
	Length    *float64
	SessionID *int64
	UserAgent *string
	Location  *string
}

// SongRef is the outcome of resolving a log event against the song and
// artist dimensions. Both fields are nil when no match exists.
type SongRef struct {
	SongID   *string
	ArtistID *string
}

// Resolved reports whether the lookup found a matching song.
func (r SongRef) Resolved() bool {
	return r.SongID != nil
}

// Songplay is a fact row. SongplayID is assigned by the fact loader.
type Songplay struct {
	SongplayID int64
	StartTime  int64
	UserID     int64
	SongID     *string
	ArtistID   *string
	SessionID  int64
	UserAgent  *string
	Level      string
	Location   *string
}

// RunConfig contains all parameters needed for one ETL run.
type RunConfig struct {
	// SongDataPath is the root directory of song metadata files
	SongDataPath string

	// LogDataPath is the root directory of activity log files
	LogDataPath string

	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format)
	ConnectionString string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.SongDataPath == "" {
		errs = append(errs, fmt.Errorf("SongDataPath is required: %w", ErrInvalidConfig))
	}

	if c.LogDataPath == "" {
		errs = append(errs, fmt.Errorf("LogDataPath is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string
}
