// Package mocks provides hand-written mock implementations of the ports
// interfaces for tests.
package mocks

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/user/lyrexport/pkg/ports"
)

// FileSystem is an in-memory mock of ports.FileSystem. Individual operations
// can be overridden through the *Func fields to inject failures.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	mtime map[string]time.Time

	ReadFileFunc      func(path string) ([]byte, error)
	WriteFileFunc     func(path string, data []byte) error
	WriteFileSyncFunc func(path string, data []byte) error
	MkdirAllFunc      func(path string) error
	ExistsFunc        func(path string) (bool, error)
	RemoveFunc        func(path string) error
	RemoveAllFunc     func(path string) error
	RenameFunc        func(oldPath, newPath string) error
	StatFunc          func(path string) (fs.FileInfo, error)
	ReadDirFunc       func(path string) ([]fs.DirEntry, error)

	// Recorded calls for verification
	Removed    []string
	Renamed    [][2]string
	RemovedAll []string
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		mtime: make(map[string]time.Time),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.mtime[path] = time.Now()
	return nil
}

func (m *FileSystem) WriteFileSync(path string, data []byte) error {
	if m.WriteFileSyncFunc != nil {
		return m.WriteFileSyncFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.mtime[path] = time.Now()
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for p := path; p != "/" && p != "." && p != ""; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	m.mtime[path] = time.Now()
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	return m.dirs[path], nil
}

func (m *FileSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, path)
	if _, ok := m.files[path]; !ok && !m.dirs[path] {
		return fmt.Errorf("remove %s: not found", path)
	}
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

func (m *FileSystem) RemoveAll(path string) error {
	if m.RemoveAllFunc != nil {
		return m.RemoveAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovedAll = append(m.RemovedAll, path)
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	for p := range m.dirs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.dirs, p)
		}
	}
	return nil
}

func (m *FileSystem) Rename(oldPath, newPath string) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(oldPath, newPath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renamed = append(m.Renamed, [2]string{oldPath, newPath})
	data, ok := m.files[oldPath]
	if !ok {
		return fmt.Errorf("rename %s: not found", oldPath)
	}
	delete(m.files, oldPath)
	m.files[newPath] = data
	m.mtime[newPath] = time.Now()
	return nil
}

func (m *FileSystem) Stat(path string) (fs.FileInfo, error) {
	if m.StatFunc != nil {
		return m.StatFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return fileInfo{name: filepath.Base(path), size: int64(len(data)), mtime: m.mtime[path]}, nil
	}
	if m.dirs[path] {
		return fileInfo{name: filepath.Base(path), dir: true, mtime: m.mtime[path]}, nil
	}
	return nil, fmt.Errorf("stat %s: not found", path)
}

func (m *FileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	if m.ReadDirFunc != nil {
		return m.ReadDirFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	prefix := path + string(filepath.Separator)

	collect := func(p string, dir bool, size int64) {
		if !strings.HasPrefix(p, prefix) {
			return
		}
		rest := strings.TrimPrefix(p, prefix)
		name := rest
		isDir := dir
		if i := strings.IndexRune(rest, filepath.Separator); i >= 0 {
			name = rest[:i]
			isDir = true
		}
		if seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, dirEntry{fileInfo{name: name, dir: isDir, size: size, mtime: m.mtime[p]}})
	}

	for p, data := range m.files {
		collect(p, false, int64(len(data)))
	}
	for p := range m.dirs {
		collect(p, true, 0)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// SetModTime overrides the recorded modification time for a path.
func (m *FileSystem) SetModTime(path string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mtime[path] = t
}

// Files returns a snapshot of all stored file paths.
func (m *FileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

type fileInfo struct {
	name  string
	size  int64
	dir   bool
	mtime time.Time
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return f.mtime }
func (f fileInfo) IsDir() bool        { return f.dir }
func (f fileInfo) Sys() interface{}   { return nil }

type dirEntry struct {
	info fileInfo
}

func (d dirEntry) Name() string               { return d.info.name }
func (d dirEntry) IsDir() bool                { return d.info.dir }
func (d dirEntry) Type() fs.FileMode          { return d.info.Mode() }
func (d dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
