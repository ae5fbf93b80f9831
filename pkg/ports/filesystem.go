package ports

import (
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations.
// The frame store performs every durable write through this interface so
// failure paths (denied writes, failed renames) can be exercised in tests.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// WriteFileSync writes data to a file and syncs it to durable storage
	// before returning. Used where a later rename must expose only a fully
	// persisted file.
	WriteFileSync(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// RemoveAll deletes a path and any children it contains.
	RemoveAll(path string) error

	// Rename atomically moves a file within the same filesystem.
	Rename(oldPath, newPath string) error

	// Stat returns file metadata.
	Stat(path string) (os.FileInfo, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)
}
