package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller reloads through r whenever the modification times under r's
// config root change. Failed scans back off exponentially. It returns
// immediately.
func StartPoller(ctx context.Context, r *Reloader, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		exts := watchedExtensions()
		skip := r.paths.PrefsPath()
		last, _ := fingerprint(r.dirs(), exts, skip)
		failures := 0

		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-r.trigger:
				_ = r.Load()
				continue
			case <-timer.C:
			}

			current, err := fingerprint(r.dirs(), exts, skip)
			if err != nil {
				failures++
				r.logger.Warn("config poll failed", "err", err, "failures", failures)
			} else {
				failures = 0
				if current != last {
					last = current
					_ = r.Load()
				}
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// dirState summarises a set of directories well enough to notice edits,
// additions and removals.
type dirState struct {
	files  int
	latest int64 // newest mtime, unix nanoseconds
	size   int64
}

// fingerprint covers files in dirs with one of exts, except skip.
func fingerprint(dirs, exts []string, skip string) (dirState, error) {
	var st dirState
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return dirState{}, err
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() || path == skip || !slices.Contains(exts, filepath.Ext(path)) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				// Removed between ReadDir and Info.
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return dirState{}, err
			}
			st.files++
			st.size += info.Size()
			if mt := info.ModTime().UnixNano(); mt > st.latest {
				st.latest = mt
			}
		}
	}
	return st, nil
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
