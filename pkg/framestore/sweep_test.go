package framestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/lyrexport/pkg/adapters/logger"
	"github.com/user/lyrexport/pkg/adapters/osfilesystem"
)

func TestSweepOrphans_RemovesExpiredSessions(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, osfilesystem.New(), logger.NewNoop(), WithRetention(24*time.Hour))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	oldDir := filepath.Join(root, "session_old")
	newDir := filepath.Join(root, "session_new")
	for _, dir := range []string{oldDir, newDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	stale := time.Now().Add(-25 * time.Hour)
	if err := os.Chtimes(oldDir, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := store.SweepOrphans()
	if err != nil {
		t.Fatalf("SweepOrphans failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}

	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Error("expired session directory still exists")
	}
	if _, err := os.Stat(newDir); err != nil {
		t.Errorf("young session directory was removed: %v", err)
	}
}

func TestSweepOrphans_SkipsLiveSessions(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, osfilesystem.New(), logger.NewNoop(), WithRetention(24*time.Hour))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sess, err := store.CreateSession("live")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(sess.Root, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := store.SweepOrphans()
	if err != nil {
		t.Fatalf("SweepOrphans failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
	if _, err := os.Stat(sess.Root); err != nil {
		t.Errorf("live session directory was removed: %v", err)
	}
}

func TestSweepOrphans_IgnoresForeignEntries(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, osfilesystem.New(), logger.NewNoop(), WithRetention(0))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	foreign := filepath.Join(root, "not_a_session")
	if err := os.MkdirAll(foreign, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(foreign, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	removed, err := store.SweepOrphans()
	if err != nil {
		t.Fatalf("SweepOrphans failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("foreign directory was removed: %v", err)
	}
}
