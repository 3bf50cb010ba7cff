package app

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/state"
	"github.com/five82/perch/internal/ui"
)

// Options configure the perch inspector.
type Options struct {
	Paths     config.Paths
	Logger    *log.Logger
	PollEvery time.Duration // fallback polling interval; zero uses default
	LogPath   string        // file the logger writes to, shown in the Log section
}

// Setup reports what first-run preparation did.
type Setup struct {
	Theme        config.Bootstrap
	Config       config.Bootstrap
	LegacyConfig bool
}

// Prepare installs the default theme and writes the initial config when
// they are missing. Failures are logged and otherwise ignored; they surface
// on the next load.
func Prepare(paths config.Paths, logger *log.Logger) Setup {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	setup := Setup{
		Theme:        config.InstallDefaultTheme(paths),
		Config:       config.CreateInitialConfig(paths),
		LegacyConfig: config.HasLegacyConfig(paths),
	}

	for _, b := range []config.Bootstrap{setup.Theme, setup.Config} {
		switch {
		case b.Err != nil:
			logger.Warn("first-run setup failed", "path", b.Path, "err", b.Err)
		case b.Created:
			logger.Info("created", "path", b.Path)
		}
	}
	if setup.Config.Created {
		logger.Info("generated nickname", "nickname", setup.Config.Nickname)
	}
	if setup.LegacyConfig {
		logger.Warn("found a config.yaml from an older release; it is no longer read, move its settings to "+config.FileName,
			"dir", paths.Root())
	}
	return setup
}

// Run prepares the config directory, loads the config, keeps it fresh in the
// background and runs the inspector until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	Prepare(opts.Paths, logger)

	store := &state.Store{}
	reloader := NewReloader(opts.Paths, store, logger)

	// A failed first load is shown by the UI rather than aborting.
	_ = reloader.Load()

	reloader.Start(ctx, opts.PollEvery)

	userPrefs, _ := prefs.Load(opts.Paths.PrefsPath())

	err := ui.Run(ui.Options{
		Store:      store,
		Reload:     reloader.Reload,
		Prefs:      userPrefs,
		PrefsPath:  opts.Paths.PrefsPath(),
		ConfigPath: opts.Paths.ConfigPath(),
		LogPath:    opts.LogPath,
		Logger:     logger,
	}, tea.WithContext(ctx))
	if err != nil && ctx.Err() != nil {
		// Interrupted by signal.
		return nil
	}
	return err
}
