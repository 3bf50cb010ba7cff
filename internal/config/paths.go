package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/perch/internal/fsutil"
)

const (
	// AppName names the config directory.
	AppName = "perch"
	// FileName is the config file inside the config directory.
	FileName = "config.toml"
	// LegacyFileName is the previous-format config file.
	LegacyFileName = "config.yaml"
	// DefaultThemeFileName is the theme file installed on first run.
	DefaultThemeFileName = "ferra.toml"

	themeExtension = ".toml"
	soundsDirName  = "sounds"
	themesDirName  = "themes"
	logFileName    = "perch.log"
	prefsFileName  = "prefs.toml"
	envConfigDir   = "PERCH_CONFIG_DIR"
)

// Paths locates everything perch keeps on disk below one root directory.
// Directory accessors create the directory on demand and panic when the OS
// refuses: nothing works without a writable config root.
type Paths struct {
	root string
}

// NewPaths returns Paths rooted at root. An empty root uses DefaultRoot.
func NewPaths(root string) Paths {
	if strings.TrimSpace(root) == "" {
		root = DefaultRoot()
	}
	return Paths{root: mustExpand(root)}
}

// DefaultRoot returns the OS config root for perch:
// $PERCH_CONFIG_DIR, $XDG_CONFIG_HOME/perch, os.UserConfigDir()/perch,
// then ~/.config/perch.
func DefaultRoot() string {
	if env := os.Getenv(envConfigDir); env != "" {
		return mustExpand(env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", AppName)
}

// Root returns the root without touching the filesystem.
func (p Paths) Root() string {
	return p.root
}

// ConfigDir returns the config root, creating it if needed.
func (p Paths) ConfigDir() string {
	return ensureDir(p.root, "config")
}

// SoundsDir returns <root>/sounds, creating it if needed.
func (p Paths) SoundsDir() string {
	return ensureDir(filepath.Join(p.ConfigDir(), soundsDirName), "sounds")
}

// ThemesDir returns <root>/themes, creating it if needed.
func (p Paths) ThemesDir() string {
	return ensureDir(filepath.Join(p.ConfigDir(), themesDirName), "themes")
}

// ConfigPath returns the config file path.
func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigDir(), FileName)
}

// LogPath returns the log file written while the TUI owns the terminal.
func (p Paths) LogPath() string {
	return filepath.Join(p.ConfigDir(), logFileName)
}

// PrefsPath returns the inspector preferences file.
func (p Paths) PrefsPath() string {
	return filepath.Join(p.ConfigDir(), prefsFileName)
}

func ensureDir(dir, what string) string {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(fmt.Sprintf("expected permissions to create %s folder: %v", what, err))
	}
	return dir
}

func mustExpand(path string) string {
	expanded, err := fsutil.ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
