package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/perch/internal/audio"
	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/state"
	"github.com/five82/perch/internal/watch"
)

// Reloader loads the config into a store, and again whenever the files
// behind it change or Reload is called.
type Reloader struct {
	paths   config.Paths
	store   *state.Store
	logger  *log.Logger
	trigger chan struct{}
}

// NewReloader returns a Reloader for the config under paths.
func NewReloader(paths config.Paths, store *state.Store, logger *log.Logger) *Reloader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reloader{
		paths:   paths,
		store:   store,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// Load runs one load synchronously and records the outcome in the store.
func (r *Reloader) Load() error {
	cfg, err := config.Load(r.paths, config.WithLogger(r.logger))
	if err != nil {
		r.store.Update(nil, err)
		kind, _ := config.KindOf(err)
		r.logger.Error("config load failed", "kind", kind, "err", err)
		return err
	}
	r.store.Update(&cfg, nil)
	r.logger.Info("config loaded",
		"servers", len(cfg.Servers),
		"theme", cfg.Themes.Default.Name,
		"themes", len(cfg.Themes.All),
	)
	return nil
}

// Reload asks the running reloader to load again. It never blocks; repeated
// calls before the load starts collapse into one.
func (r *Reloader) Reload() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Start watches the config, themes and sounds directories and reloads on
// change until ctx is done. When the platform watcher cannot start it falls
// back to polling modification times every interval. It returns immediately.
func (r *Reloader) Start(ctx context.Context, interval time.Duration) {
	w, err := watch.New(r.dirs(), watch.WithExtensions(watchedExtensions()...))
	if err != nil {
		r.logger.Warn("file watching unavailable, polling instead", "err", err, "interval", interval)
		StartPoller(ctx, r, interval)
		return
	}

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case paths, ok := <-w.Changes():
				if !ok {
					return
				}
				if !r.relevant(paths) {
					continue
				}
				r.logger.Debug("config files changed", "paths", paths)
				_ = r.Load()
			case err := <-w.Errors():
				r.logger.Warn("file watcher error", "err", err)
			case <-r.trigger:
				_ = r.Load()
			}
		}
	}()
}

func (r *Reloader) dirs() []string {
	return []string{r.paths.ConfigDir(), r.paths.ThemesDir(), r.paths.SoundsDir()}
}

// relevant drops batches that only touch the inspector's own prefs file.
func (r *Reloader) relevant(paths []string) bool {
	prefsPath := r.paths.PrefsPath()
	for _, p := range paths {
		if p != prefsPath {
			return true
		}
	}
	return false
}

func watchedExtensions() []string {
	return append([]string{".toml"}, audio.Extensions...)
}
