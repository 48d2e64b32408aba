package sparkify

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // ETL run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitLoadFailed      = 13 // A statement or COPY failed while loading a file
	ExitParseError      = 14 // An input file could not be parsed
)

const (
	// DataFileExtension is the extension of every input file the locator picks up.
	DataFileExtension = ".json"

	// DefaultSongDataPath is the song metadata root used when none is configured.
	DefaultSongDataPath = "data/song_data"

	// DefaultLogDataPath is the activity log root used when none is configured.
	DefaultLogDataPath = "data/log_data"

	// DefaultDatabase is the database the ETL writes to when none is configured.
	DefaultDatabase = "sparkifydb"

	// NextSongPage is the page value of the only log events that become facts.
	NextSongPage = "NextSong"

	// AppName is reported to PostgreSQL as application_name.
	AppName = "sparkify"
)
