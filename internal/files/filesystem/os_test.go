package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_WalkVisitsNestedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "A", "B"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "A", "B", "x.json"), []byte("{}"), 0644))

	dir, err := NewOSFileSystem().Open(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir.Path()))

	var files []string
	err = dir.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if !f.Info().IsDir() {
			files = append(files, f.Path())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir.Path(), "A", "B", "x.json")}, files)
}

func TestOSFileSystem_OpenMissingDirectory(t *testing.T) {
	_, err := NewOSFileSystem().Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSFileSystem_OpenNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))

	_, err := NewOSFileSystem().Open(file)
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = NewOSFileSystem().Open(filepath.Join(file, "sub"))
	assert.ErrorIs(t, err, ErrNotDirectory)
}
