package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (f *memoryFileInfo) Name() string { return f.name }
func (f *memoryFileInfo) Size() int64  { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (f *memoryFileInfo) ModTime() time.Time { return time.Time{} }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory entries
type memoryFile struct {
	absPath string
	info    fs.FileInfo
}

func (f *memoryFile) Path() string   { return f.absPath }
func (f *memoryFile) Info() FileInfo { return f.info }

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk emits the directory, implied subdirectories and files in the same
// order filepath.Walk would: lexical by path component, depth-first.
func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	for _, entry := range entries {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()
			callbackErr = fn(entry, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}
	return nil
}

// MemoryFileSystem is an in-memory FileSystemProvider for tests.
// Paths are slash-separated; directories exist implicitly above files.
type MemoryFileSystem struct {
	files map[string][]byte
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

// AddFile stores content at path, replacing any previous content.
func (m *MemoryFileSystem) AddFile(filePath string, content string) {
	m.files[clean(filePath)] = []byte(content)
}

func (m *MemoryFileSystem) Open(dirPath string) (Directory, error) {
	p := clean(dirPath)
	if m.fileAtOrAbove(p) {
		return nil, fmt.Errorf("failed to access path: %s: %w", dirPath, ErrNotDirectory)
	}
	if !m.dirExists(p) {
		return nil, fmt.Errorf("failed to access path: %s: %w", dirPath, fs.ErrNotExist)
	}
	return &memoryDirectory{absPath: p, fs: m}, nil
}

func (m *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, ok := m.files[clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	return content, nil
}

// fileAtOrAbove reports whether p or one of its parents is a stored file.
func (m *MemoryFileSystem) fileAtOrAbove(p string) bool {
	for ; p != "/"; p = path.Dir(p) {
		if _, ok := m.files[p]; ok {
			return true
		}
	}
	return false
}

func (m *MemoryFileSystem) dirExists(dir string) bool {
	if dir == "/" {
		return true
	}
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m *MemoryFileSystem) entriesUnder(root string) []*memoryFile {
	seen := map[string]bool{root: true}
	entries := []*memoryFile{{
		absPath: root,
		info:    &memoryFileInfo{name: path.Base(root), isDir: true},
	}}

	prefix := strings.TrimSuffix(root, "/") + "/"
	for p, content := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rel := strings.TrimPrefix(p, prefix)
		parts := strings.Split(rel, "/")
		for i := 1; i < len(parts); i++ {
			dir := prefix + strings.Join(parts[:i], "/")
			if seen[dir] {
				continue
			}
			seen[dir] = true
			entries = append(entries, &memoryFile{
				absPath: dir,
				info:    &memoryFileInfo{name: parts[i-1], isDir: true},
			})
		}
		entries = append(entries, &memoryFile{
			absPath: p,
			info:    &memoryFileInfo{name: path.Base(p), size: int64(len(content))},
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return lessByComponent(entries[i].absPath, entries[j].absPath)
	})
	return entries
}

func lessByComponent(a, b string) bool {
	pa := strings.Split(a, "/")
	pb := strings.Split(b, "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

func clean(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
