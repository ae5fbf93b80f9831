package framestore

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/user/lyrexport/pkg/adapters/logger"
	"github.com/user/lyrexport/pkg/mocks"
)

func TestCreateSession_LaysOutDirectories(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)

	sess, err := store.CreateSession("abc")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if sess.Root != filepath.Join("/store", "session_abc") {
		t.Errorf("unexpected session root %q", sess.Root)
	}
	for _, dir := range []string{sess.FramesDir, sess.BatchesDir, sess.OutputDir} {
		ok, err := fs.Exists(dir)
		if err != nil || !ok {
			t.Errorf("directory %q missing (ok=%v err=%v)", dir, ok, err)
		}
	}
}

func TestCreateSession_SameIDOverwritesRecord(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)

	first, _ := store.CreateSession("abc")
	second, err := store.CreateSession("abc")
	if err != nil {
		t.Fatalf("second CreateSession failed: %v", err)
	}
	if second == first {
		t.Error("expected a fresh session record")
	}
	if got := len(store.SessionIDs()); got != 1 {
		t.Errorf("expected 1 live session, got %d", got)
	}
}

func TestSessionIDs(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)
	store.CreateSession("a")
	store.CreateSession("b")

	ids := store.SessionIDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("unexpected session ids %v", ids)
	}
}

func TestCleanupSession_RemovesTree(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)
	sess, _ := store.CreateSession("abc")
	fs.WriteFile(filepath.Join(sess.FramesDir, "frame_000000.png"), []byte("x"))

	if err := store.CleanupSession("abc"); err != nil {
		t.Fatalf("CleanupSession failed: %v", err)
	}

	if ok, _ := fs.Exists(sess.Root); ok {
		t.Error("session root still exists after cleanup")
	}
	if _, err := store.Session("abc"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after cleanup, got %v", err)
	}
}

func TestCleanupSession_UnknownID(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)

	if err := store.CleanupSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCleanupFrames_BestEffort(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := newTestStore(t, fs)
	sess, _ := store.CreateSession("abc")

	fs.WriteFile(filepath.Join(sess.FramesDir, "frame_000000.png"), []byte("a"))
	fs.WriteFile(filepath.Join(sess.FramesDir, "frame_000002.png"), []byte("b"))

	// frame_000001.png does not exist; cleanup must continue past it.
	err := store.CleanupFrames("abc", []string{
		"frame_000000.png",
		"frame_000001.png",
		"frame_000002.png",
	})
	if err != nil {
		t.Fatalf("CleanupFrames failed: %v", err)
	}

	if files := fs.Files(); len(files) != 0 {
		t.Errorf("expected all frames removed, still have %v", files)
	}
}

func TestFrameAndBatchFileNames(t *testing.T) {
	if got := FrameFileName(7); got != "frame_000007.png" {
		t.Errorf("FrameFileName(7) = %q", got)
	}
	if got := FrameFileName(123456); got != "frame_123456.png" {
		t.Errorf("FrameFileName(123456) = %q", got)
	}
	if got := BatchFileName(3); got != "batch_0003.mp4" {
		t.Errorf("BatchFileName(3) = %q", got)
	}
}

func TestNew_RootCreationFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.MkdirAllFunc = func(path string) error {
		return errors.New("read-only filesystem")
	}

	_, err := New("/store", fs, logger.NewNoop())
	if err == nil {
		t.Fatal("expected error when root cannot be created")
	}
}
