package framestore

import (
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Stats describes storage usage for the store root or one session.
type Stats struct {
	TotalBytes   int64   // Capacity of the filesystem holding the store
	FreeBytes    int64   // Available space on that filesystem
	UsedBytes    int64   // Bytes used by the measured directory tree
	UsagePercent float64 // UsedBytes as a percentage of TotalBytes
}

// Stats computes storage usage for one session, or for the whole store root
// when sessionID is empty. Sizing runs concurrently with writers and is a
// best-effort snapshot, not a transactional read.
func (s *Store) Stats(sessionID string) (Stats, error) {
	target := s.root
	if sessionID != "" {
		sess, err := s.Session(sessionID)
		if err != nil {
			return Stats{}, err
		}
		target = sess.Root
	}

	used, err := s.dirSize(target)
	if err != nil {
		return Stats{}, err
	}

	total, free, err := diskSpace(s.root)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalBytes: total,
		FreeBytes:  free,
		UsedBytes:  used,
	}
	if total > 0 {
		stats.UsagePercent = float64(used) / float64(total) * 100
	}
	return stats, nil
}

// dirSize sums the recursive size of dir, sizing top-level entries in
// parallel.
func (s *Store) dirSize(dir string) (int64, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var total atomic.Int64
	var g errgroup.Group
	g.SetLimit(8)

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		g.Go(func() error {
			if isDir {
				sub, err := s.walkSize(path)
				if err != nil {
					return err
				}
				total.Add(sub)
				return nil
			}
			info, err := s.fs.Stat(path)
			if err != nil {
				return err
			}
			total.Add(info.Size())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}

// walkSize sums a subtree sequentially.
func (s *Store) walkSize(dir string) (int64, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := s.walkSize(path)
			if err != nil {
				return 0, err
			}
			total += sub
			continue
		}
		info, err := s.fs.Stat(path)
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}
