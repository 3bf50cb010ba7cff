package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/perch/internal/config"
)

// Snapshot is the latest resolved configuration plus the outcome of the most
// recent load attempt.
type Snapshot struct {
	Config              config.Config
	HasConfig           bool
	Generation          uint64 // bumped on every successful load
	LastLoaded          time.Time
	LastError           error
	ConsecutiveFailures int
}

// Stale reports whether the shown config is older than the file on disk
// because the latest reload failed.
func (s Snapshot) Stale() bool {
	return s.HasConfig && s.LastError != nil
}

// Store hands config snapshots from the reloader to the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a load attempt. A successful load replaces the config
// wholesale; a failed one keeps the previous config and records err.
func (s *Store) Update(cfg *config.Config, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if cfg != nil {
		s.snapshot.Config = cloneConfig(*cfg)
		s.snapshot.HasConfig = true
		s.snapshot.Generation++
	}
	s.snapshot.LastError = nil
	s.snapshot.LastLoaded = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Config = cloneConfig(s.snapshot.Config)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneConfig(cfg config.Config) config.Config {
	dup := cfg
	dup.Themes.All = slices.Clone(cfg.Themes.All)
	dup.Servers = maps.Clone(cfg.Servers)
	return dup
}
