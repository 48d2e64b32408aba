// Package logging provides concrete implementations of the sparkify.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes human-readable messages to stderr
//   - JSONLogger: Writes one zerolog JSON object per message, tagged with the run id
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
