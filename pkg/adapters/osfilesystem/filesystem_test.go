package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "test.txt")
	testData := []byte("hello world")

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "a", "b", "c", "test.txt")
	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_WriteFileSync(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "d", "synced.bin")
	testData := []byte("durable bytes")

	if err := fs.WriteFileSync(testPath, testData); err != nil {
		t.Fatalf("WriteFileSync failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}

	// Overwrites truncate rather than append.
	if err := fs.WriteFileSync(testPath, []byte("x")); err != nil {
		t.Fatalf("WriteFileSync overwrite failed: %v", err)
	}
	data, err = fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "x" {
		t.Errorf("expected overwrite to truncate, got %q", data)
	}
}

func TestFileSystem_Rename(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	oldPath := filepath.Join(tmpDir, "old.txt")
	newPath := filepath.Join(tmpDir, "new.txt")

	if err := fs.WriteFile(oldPath, []byte("data")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	if exists, _ := fs.Exists(oldPath); exists {
		t.Error("old path should not exist after rename")
	}
	if exists, _ := fs.Exists(newPath); !exists {
		t.Error("new path should exist after rename")
	}
}

func TestFileSystem_RemoveAll(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	nested := filepath.Join(tmpDir, "root", "sub")
	if err := fs.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fs.WriteFile(filepath.Join(nested, "f.txt"), []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.RemoveAll(filepath.Join(tmpDir, "root")); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if exists, _ := fs.Exists(filepath.Join(tmpDir, "root")); exists {
		t.Error("expected directory tree to be removed")
	}
}

func TestFileSystem_ReadDirAndStat(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	for _, name := range []string{"a.txt", "b.txt"} {
		if err := fs.WriteFile(filepath.Join(tmpDir, name), []byte("x")); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	entries, err := fs.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}

	info, err := fs.Stat(filepath.Join(tmpDir, "a.txt"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 1 {
		t.Errorf("expected size 1, got %d", info.Size())
	}
	if info.ModTime().IsZero() {
		t.Error("expected non-zero mod time")
	}
	_ = os.Remove(filepath.Join(tmpDir, "a.txt"))
}
