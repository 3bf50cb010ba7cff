package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/perch/internal/app"
	"github.com/five82/perch/internal/config"
)

// errCheckFailed is returned after check has already reported the failure.
var errCheckFailed = errors.New("config check failed")

type globalFlags struct {
	configDir string
	logLevel  string
	poll      time.Duration
}

func (g *globalFlags) paths() config.Paths {
	return config.NewPaths(g.configDir)
}

func (g *globalFlags) logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.TrimSpace(g.logLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          config.AppName,
	}), nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "perch",
		Short: "Inspect and live-reload an IRC client configuration",
		Long: `perch resolves config.toml, the themes directory and notification sounds
the same way the client does, then shows the result and reloads it whenever
the files change.

Without a terminal on stdout it prints a one-shot check instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return runCheck(cmd, g, formatText)
			}
			return runInspector(cmd, g)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configDir, "config-dir", "", "config root (defaults to $PERCH_CONFIG_DIR or the OS config dir)")
	flags.StringVar(&g.logLevel, "log-level", "info", "debug, info, warn or error")
	root.Flags().DurationVar(&g.poll, "poll", 0, "polling interval when file watching is unavailable")

	root.AddCommand(newCheckCmd(g), newThemesCmd(g), newInitCmd(g))
	return root
}

// runInspector owns the terminal, so logs go to the log file.
func runInspector(cmd *cobra.Command, g *globalFlags) error {
	paths := g.paths()
	logFile, err := os.OpenFile(paths.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger, err := g.logger(logFile)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), app.Options{
		Paths:     paths,
		Logger:    logger,
		PollEvery: g.poll,
		LogPath:   paths.LogPath(),
	})
}

func newInitCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default theme and a starter config.toml if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			setup := app.Prepare(g.paths(), logger)
			out := cmd.OutOrStdout()
			for _, b := range []config.Bootstrap{setup.Theme, setup.Config} {
				switch {
				case b.Err != nil:
					fmt.Fprintf(out, "failed   %s: %v\n", b.Path, b.Err)
				case b.Created:
					fmt.Fprintf(out, "created  %s\n", b.Path)
				default:
					fmt.Fprintf(out, "exists   %s\n", b.Path)
				}
			}
			if setup.Config.Created {
				fmt.Fprintf(out, "nickname %s\n", setup.Config.Nickname)
			}
			return errors.Join(setup.Theme.Err, setup.Config.Err)
		},
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
