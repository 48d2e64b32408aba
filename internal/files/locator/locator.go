// Package locator finds the input data files of an ETL run.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// Locator implements sparkify.FileLocator over a FileSystemProvider.
type Locator struct {
	fs filesystem.FileSystemProvider
}

// NewLocator creates a Locator over the OS filesystem.
func NewLocator() *Locator {
	return NewLocatorWithFS(filesystem.NewOSFileSystem())
}

// NewLocatorWithFS creates a Locator over the given filesystem provider.
func NewLocatorWithFS(fsProvider filesystem.FileSystemProvider) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Locator{fs: fsProvider}
}

// Find returns the absolute paths of all regular files below root whose
// extension equals ext, in walk order. A root that is missing or is not a
// directory yields no files.
func (l *Locator) Find(root, ext string) ([]string, error) {
	dir, err := l.fs.Open(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, filesystem.ErrNotDirectory) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}

	paths := []string{}
	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if file.Info().IsDir() {
			return nil
		}
		if filepath.Ext(file.Path()) == ext {
			paths = append(paths, file.Path())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return paths, nil
}

var _ sparkify.FileLocator = (*Locator)(nil)
