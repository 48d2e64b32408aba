package filesystem

import (
	"errors"
	"io/fs"
)

// ErrNotDirectory is returned by Open when the path, or one of its parents,
// is a regular file.
var ErrNotDirectory = errors.New("not a directory")

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents a walked entry and its metadata
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// Info returns file metadata
	Info() FileInfo
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits the directory itself and everything below it in lexical,
	// depth-first order. If fn returns an error, walking stops.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances.
// Open reports a missing path with an error matching fs.ErrNotExist and a
// path that is not a directory with one matching ErrNotDirectory.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)
}
