// Package filesystem abstracts directory traversal so input discovery can run
// against the OS filesystem in production and an in-memory tree in tests.
package filesystem
