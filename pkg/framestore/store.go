// Package framestore manages session-scoped staging of frame images and
// segment artifacts on durable storage: crash-safe frame writes, storage
// accounting, and reclamation of sessions abandoned by crashed processes.
package framestore

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/ideamans/go-l10n"
	"github.com/user/lyrexport/pkg/ports"
)

const (
	// DefaultRetention is how long an idle session directory survives
	// before the orphan sweep removes it.
	DefaultRetention = 24 * time.Hour

	// DefaultSweepInterval is how often the orphan sweep runs.
	DefaultSweepInterval = 30 * time.Minute

	sessionPrefix = "session_"
	lockFileName  = ".lyrexport.lock"
)

// Session is a durable-storage scope for one export operation. Its
// subdirectories exist for the lifetime of the record.
type Session struct {
	ID         string
	Root       string
	FramesDir  string
	BatchesDir string
	OutputDir  string
	CreatedAt  time.Time
	LastAccess time.Time
}

// Store owns every session under one root directory. Sessions are referenced
// by id everywhere else; only the store touches their directories.
type Store struct {
	root       string
	fs         ports.FileSystem
	log        ports.Logger
	retention  time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	lock       *flock.Flock

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Store.
type Option func(*Store)

// WithRetention overrides the idle-session retention window.
func WithRetention(d time.Duration) Option {
	return func(s *Store) { s.retention = d }
}

// WithSweepInterval overrides the periodic sweep interval.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Store) { s.sweepEvery = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store rooted at root, creating the directory if needed.
func New(root string, fs ports.FileSystem, log ports.Logger, opts ...Option) (*Store, error) {
	if err := fs.MkdirAll(root); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}

	s := &Store{
		root:       root,
		fs:         fs,
		log:        log.WithComponent("framestore"),
		retention:  DefaultRetention,
		sweepEvery: DefaultSweepInterval,
		now:        time.Now,
		lock:       flock.New(filepath.Join(root, lockFileName)),
		sessions:   make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// CreateSession creates the session root and its three subdirectories.
// Calling twice with the same id overwrites the in-memory record; the
// directories already existing is tolerated.
func (s *Store) CreateSession(id string) (*Session, error) {
	root := filepath.Join(s.root, sessionPrefix+id)
	sess := &Session{
		ID:         id,
		Root:       root,
		FramesDir:  filepath.Join(root, "frames"),
		BatchesDir: filepath.Join(root, "batches"),
		OutputDir:  filepath.Join(root, "output"),
		CreatedAt:  s.now(),
		LastAccess: s.now(),
	}

	for _, dir := range []string{sess.FramesDir, sess.BatchesDir, sess.OutputDir} {
		if err := s.fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("create session directory %s: %w", dir, err)
		}
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Debug(l10n.F("Session %s created", id))
	return sess, nil
}

// Session returns the session record for id.
func (s *Store) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// SessionIDs returns the ids of all live sessions.
func (s *Store) SessionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// CleanupSession recursively removes the session root. The registry entry is
// dropped even when removal fails.
func (s *Store) CleanupSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	if err := s.fs.RemoveAll(sess.Root); err != nil {
		return fmt.Errorf("remove session %s: %w", id, err)
	}

	s.log.Debug(l10n.F("Session %s removed", id))
	return nil
}

// CleanupFrames removes consumed frame files. Best effort: individual
// failures are logged and do not abort the batch.
func (s *Store) CleanupFrames(id string, frameNames []string) error {
	sess, err := s.Session(id)
	if err != nil {
		return err
	}

	removed := 0
	for _, name := range frameNames {
		path := filepath.Join(sess.FramesDir, name)
		if err := s.fs.Remove(path); err != nil {
			s.log.Warn(l10n.F("Failed to remove frame %s: %s", name, err))
			continue
		}
		removed++
	}

	s.touch(id)
	s.log.Debug(l10n.F("Removed %d consumed frames", removed))
	return nil
}

// touch refreshes a session's last-access timestamp.
func (s *Store) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.LastAccess = s.now()
	}
}

// FrameFileName returns the canonical zero-padded frame filename for index.
func FrameFileName(index int) string {
	return fmt.Sprintf("frame_%06d.png", index)
}

// FramePattern is the printf-style pattern matching FrameFileName output.
const FramePattern = "frame_%06d.png"

// BatchFileName returns the canonical segment filename for a batch index.
func BatchFileName(index int) string {
	return fmt.Sprintf("batch_%04d.mp4", index)
}
