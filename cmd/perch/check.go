package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/perch/internal/config"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatTOML = "toml"
)

type report struct {
	ConfigPath    string         `yaml:"config_path" toml:"config_path"`
	OK            bool           `yaml:"ok" toml:"ok"`
	ErrorKind     string         `yaml:"error_kind,omitempty" toml:"error_kind,omitempty"`
	Error         string         `yaml:"error,omitempty" toml:"error,omitempty"`
	Theme         string         `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Themes        []string       `yaml:"themes,omitempty" toml:"themes,omitempty"`
	ScaleFactor   float64        `yaml:"scale_factor,omitempty" toml:"scale_factor,omitempty"`
	Proxy         string         `yaml:"proxy,omitempty" toml:"proxy,omitempty"`
	Notifications []string       `yaml:"notifications,omitempty" toml:"notifications,omitempty"`
	Servers       []serverReport `yaml:"servers,omitempty" toml:"servers,omitempty"`
}

type serverReport struct {
	Name     string   `yaml:"name" toml:"name"`
	Nickname string   `yaml:"nickname" toml:"nickname"`
	Address  string   `yaml:"address" toml:"address"`
	TLS      bool     `yaml:"tls" toml:"tls"`
	Channels []string `yaml:"channels,omitempty" toml:"channels,omitempty"`
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the config once and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, g, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, yaml or toml")
	return cmd
}

func runCheck(cmd *cobra.Command, g *globalFlags, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case formatText, formatYAML, formatTOML:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	logger, err := g.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	paths := g.paths()
	cfg, loadErr := config.Load(paths, config.WithLogger(logger))
	r := buildReport(paths.ConfigPath(), cfg, loadErr)

	out := cmd.OutOrStdout()
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case formatTOML:
		if err := toml.NewEncoder(out).Encode(r); err != nil {
			return err
		}
	default:
		writeText(out, r)
	}

	if loadErr != nil {
		return errCheckFailed
	}
	return nil
}

func buildReport(path string, cfg config.Config, err error) report {
	r := report{ConfigPath: path}
	if err != nil {
		if kind, ok := config.KindOf(err); ok {
			r.ErrorKind = kind.String()
		}
		r.Error = err.Error()
		return r
	}

	r.OK = true
	r.Theme = cfg.Themes.Default.Name
	for _, th := range cfg.Themes.All {
		r.Themes = append(r.Themes, th.Name)
	}
	r.ScaleFactor = cfg.ScaleFactor.Float64()
	if cfg.Proxy != nil {
		r.Proxy = fmt.Sprintf("%s://%s", cfg.Proxy.Kind, cfg.Proxy.Address())
	}
	for _, entry := range cfg.Notifications.Entries() {
		if entry.Notification.Enabled() {
			r.Notifications = append(r.Notifications, string(entry.Event))
		}
	}
	for _, name := range cfg.Servers.Names() {
		srv := cfg.Servers[name]
		r.Servers = append(r.Servers, serverReport{
			Name:     name,
			Nickname: srv.Nickname,
			Address:  srv.Address(),
			TLS:      srv.TLS(),
			Channels: srv.Channels,
		})
	}
	return r
}

func writeText(w io.Writer, r report) {
	if !r.OK {
		fmt.Fprintf(w, "%s: %s\n", r.ConfigPath, r.Error)
		return
	}
	fmt.Fprintf(w, "%s: ok\n", r.ConfigPath)
	fmt.Fprintf(w, "  theme          %s (%d available)\n", r.Theme, len(r.Themes))
	fmt.Fprintf(w, "  scale factor   %.2f\n", r.ScaleFactor)
	if r.Proxy != "" {
		fmt.Fprintf(w, "  proxy          %s\n", r.Proxy)
	}
	if len(r.Notifications) > 0 {
		fmt.Fprintf(w, "  notifications  %s\n", strings.Join(r.Notifications, ", "))
	}
	for _, s := range r.Servers {
		fmt.Fprintf(w, "  server         %s %s@%s", s.Name, s.Nickname, s.Address)
		if !s.TLS {
			fmt.Fprint(w, " (plain)")
		}
		fmt.Fprintln(w)
	}
}
