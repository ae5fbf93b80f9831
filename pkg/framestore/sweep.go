package framestore

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// Start runs an immediate orphan sweep and then sweeps periodically until ctx
// is cancelled. This is the sole defense against sessions leaked by crashed
// processes.
func (s *Store) Start(ctx context.Context) {
	if _, err := s.SweepOrphans(); err != nil {
		s.log.Warn(l10n.F("Session cleanup failed for %s: %s", s.root, err))
	}

	s.log.Debug(l10n.F("Orphan sweep started (every %s)", s.sweepEvery))
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOrphans(); err != nil {
				s.log.Warn(l10n.F("Session cleanup failed for %s: %s", s.root, err))
			}
		}
	}
}

// SweepOrphans removes session directories whose modification time exceeds
// the retention window. A file lock on the store root keeps two processes
// sharing a temp root from sweeping concurrently; if the lock is held
// elsewhere the sweep is skipped.
func (s *Store) SweepOrphans() (int, error) {
	locked, err := s.lock.TryLock()
	if err != nil {
		return 0, err
	}
	if !locked {
		s.log.Debug("Orphan sweep skipped, lock held by another process")
		return 0, nil
	}
	defer func() { _ = s.lock.Unlock() }()

	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return 0, err
	}

	live := make(map[string]bool)
	s.mu.Lock()
	for id := range s.sessions {
		live[sessionPrefix+id] = true
	}
	s.mu.Unlock()

	cutoff := s.now().Add(-s.retention)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionPrefix) {
			continue
		}
		if live[entry.Name()] {
			continue
		}

		dirPath := filepath.Join(s.root, entry.Name())
		info, err := s.fs.Stat(dirPath)
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := s.fs.RemoveAll(dirPath); err != nil {
			s.log.Warn(l10n.F("Session cleanup failed for %s: %s", entry.Name(), err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info(l10n.F("Swept %d orphaned sessions", removed))
	}
	return removed, nil
}
