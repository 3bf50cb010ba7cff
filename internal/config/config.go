package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/perch/internal/audio"
	"github.com/five82/perch/internal/notification"
	"github.com/five82/perch/internal/proxy"
	"github.com/five82/perch/internal/server"
)

const (
	minScaleFactor     = 0.1
	maxScaleFactor     = 3.0
	defaultScaleFactor = 1.0
	defaultBindAddress = "0.0.0.0"
)

// Config is the resolved settings snapshot. A reload builds a new Config;
// nothing mutates a returned one.
type Config struct {
	Themes        Themes
	Servers       server.Map
	Proxy         *proxy.Proxy
	Font          Font
	ScaleFactor   ScaleFactor
	Buffer        Buffer
	Sidebar       Sidebar
	Keyboard      Keyboard
	Notifications notification.Notifications[audio.Sound]
	FileTransfer  FileTransfer
	Tooltips      bool
	PaneToggling  bool
}

// ScaleFactor is a UI scale clamped to [0.1, 3.0]. The zero value means the
// default of 1.0.
type ScaleFactor struct {
	v float64
}

// NewScaleFactor clamps v into range.
func NewScaleFactor(v float64) ScaleFactor {
	switch {
	case v != v: // NaN
		return ScaleFactor{v: defaultScaleFactor}
	case v < minScaleFactor:
		v = minScaleFactor
	case v > maxScaleFactor:
		v = maxScaleFactor
	}
	return ScaleFactor{v: v}
}

// Float64 returns the scale factor.
func (s ScaleFactor) Float64() float64 {
	if s.v == 0 {
		return defaultScaleFactor
	}
	return s.v
}

// Font is the [font] table. Nil fields mean the UI default.
type Font struct {
	Family *string `toml:"family"`
	Size   *uint8  `toml:"size"`
}

// configuration mirrors the file schema. It is decoded once and folded into
// Config.
type configuration struct {
	Theme         string                             `toml:"theme"`
	Servers       server.Map                         `toml:"servers"`
	Proxy         *proxy.Proxy                       `toml:"proxy"`
	Font          Font                               `toml:"font"`
	ScaleFactor   *float64                           `toml:"scale_factor"`
	Buffer        Buffer                             `toml:"buffer"`
	Sidebar       Sidebar                            `toml:"sidebar"`
	Keyboard      Keyboard                           `toml:"keyboard"`
	Notifications notification.Notifications[string] `toml:"notifications"`
	FileTransfer  FileTransfer                       `toml:"file_transfer"`
	Tooltips      *bool                              `toml:"tooltips"`
	PaneToggling  *bool                              `toml:"pane_toggling"`
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *log.Logger
}

// WithLogger reports recovered problems (unreadable theme files, theme
// fallback) to logger.
func WithLogger(logger *log.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Load reads, validates and resolves the config under p.
func Load(p Paths, opts ...LoadOption) (Config, error) {
	o := loadOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	content, err := os.ReadFile(p.ConfigPath())
	if err != nil {
		return Config{}, newError(KindRead, err)
	}

	raw, err := parse(content)
	if err != nil {
		return Config{}, err
	}

	if err := raw.Servers.ReadPasswordFiles(); err != nil {
		if errors.Is(err, server.ErrDuplicatePassword) {
			return Config{}, newError(KindParse, err)
		}
		return Config{}, newError(KindIO, err)
	}

	notifications, err := notification.LoadSounds(raw.Notifications, p.SoundsDir())
	if err != nil {
		return Config{}, newError(KindLoadSounds, err)
	}

	themes, skipped, err := ScanThemes(p.ThemesDir(), raw.Theme)
	if err != nil {
		o.logger.Warn("themes unavailable, using built-in theme", "err", err)
		themes = DefaultThemes()
	}
	for _, s := range skipped {
		o.logger.Warn("skipping unreadable theme", "file", s.File, "err", s.Err)
	}

	return Config{
		Themes:        themes,
		Servers:       raw.Servers,
		Proxy:         raw.Proxy,
		Font:          raw.Font,
		ScaleFactor:   NewScaleFactor(*raw.ScaleFactor),
		Buffer:        raw.Buffer,
		Sidebar:       raw.Sidebar,
		Keyboard:      raw.Keyboard,
		Notifications: notifications,
		FileTransfer:  raw.FileTransfer,
		Tooltips:      *raw.Tooltips,
		PaneToggling:  *raw.PaneToggling,
	}, nil
}

// parse decodes content over the defaults and validates the result. Every
// optional field is set on return.
func parse(content []byte) (configuration, error) {
	raw := configuration{
		Buffer:       DefaultBuffer(),
		Sidebar:      DefaultSidebar(),
		Keyboard:     DefaultKeyboard(),
		FileTransfer: DefaultFileTransfer(),
	}
	if err := toml.Unmarshal(content, &raw); err != nil {
		return configuration{}, newError(KindParse, err)
	}

	if raw.Servers == nil {
		return configuration{}, newError(KindParse, fmt.Errorf("missing field servers"))
	}
	if raw.ScaleFactor == nil {
		v := defaultScaleFactor
		raw.ScaleFactor = &v
	}
	if raw.Tooltips == nil {
		v := true
		raw.Tooltips = &v
	}
	if raw.PaneToggling == nil {
		v := false
		raw.PaneToggling = &v
	}
	if dir := raw.FileTransfer.SaveDirectory; dir != nil {
		expanded := mustExpand(*dir)
		raw.FileTransfer.SaveDirectory = &expanded
	}
	if srv := raw.FileTransfer.Server; srv != nil && srv.BindAddress == "" {
		srv.BindAddress = defaultBindAddress
	}

	if err := raw.validate(); err != nil {
		return configuration{}, newError(KindParse, err)
	}
	return raw, nil
}

func (c configuration) validate() error {
	if err := c.Servers.Validate(); err != nil {
		return err
	}
	if c.Proxy != nil {
		if err := c.Proxy.Validate(); err != nil {
			return err
		}
	}
	if err := c.Buffer.Validate(); err != nil {
		return err
	}
	if err := c.Sidebar.Validate(); err != nil {
		return err
	}
	if err := c.Keyboard.Validate(); err != nil {
		return err
	}
	return c.FileTransfer.Validate()
}
