package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/perch/internal/config"
)

func newThemesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the themes perch can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := g.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			paths := g.paths()

			// The configured theme is only known when the config loads.
			var themes config.Themes
			if cfg, err := config.Load(paths, config.WithLogger(logger)); err == nil {
				themes = cfg.Themes
			} else {
				logger.Warn("config did not load, listing without a selection", "err", err)
				var skipped []config.ThemeFileError
				themes, skipped, err = config.ScanThemes(paths.ThemesDir(), "")
				if err != nil {
					return err
				}
				for _, s := range skipped {
					logger.Warn("skipped theme file", "file", s.File, "err", s.Err)
				}
			}

			out := cmd.OutOrStdout()
			for _, th := range themes.All {
				marker := " "
				if th == themes.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, th.Name)
			}
			return nil
		},
	}
}
