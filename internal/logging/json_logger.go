package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// Log output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// JSONLogger writes each message as a single zerolog JSON object.
// Verbose messages are emitted at debug level and only when verbose is enabled.
// Safe for concurrent use (zerolog writes each event with one Write call).
type JSONLogger struct {
	logger zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to stderr. runID is attached to
// every event so lines from one ETL run can be correlated.
func NewJSONLogger(verbose bool, runID string) *JSONLogger {
	return newJSONLogger(os.Stderr, verbose, runID)
}

func newJSONLogger(w io.Writer, verbose bool, runID string) *JSONLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if runID != "" {
		ctx = ctx.Str("run_id", runID)
	}
	return &JSONLogger{logger: ctx.Logger()}
}

// Verbose logs detailed diagnostic information at debug level.
func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.logger.Debug().Msg(render(format, args))
}

// Info logs informational messages about normal operations.
func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.logger.Info().Msg(render(format, args))
}

// Error logs error messages.
func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.logger.Error().Msg(render(format, args))
}

func render(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// New returns the logger for the requested output format.
func New(format string, verbose bool, runID string) (sparkify.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatConsole:
		return NewConsoleLogger(verbose), nil
	case FormatJSON:
		return NewJSONLogger(verbose, runID), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected %s or %s): %w",
			format, FormatConsole, FormatJSON, sparkify.ErrInvalidConfig)
	}
}

var _ sparkify.Logger = (*JSONLogger)(nil)
