package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/perch/internal/theme"
)

// Themes is the resolved theme catalog. All is never empty and Default is
// always a usable theme, whether or not the configured key matched a file.
type Themes struct {
	Default theme.Theme
	All     []theme.Theme
}

// DefaultThemes is the catalog used when the themes directory cannot be
// scanned: the built-in theme, alone.
func DefaultThemes() Themes {
	def := theme.Default()
	return Themes{Default: def, All: []theme.Theme{def}}
}

// Find returns the first theme in the catalog named name.
func (t Themes) Find(name string) (theme.Theme, bool) {
	for _, th := range t.All {
		if th.Name == name {
			return th, true
		}
	}
	return theme.Theme{}, false
}

// Next returns the catalog entry after current, wrapping around. An unknown
// current yields the first entry.
func (t Themes) Next(current theme.Theme) theme.Theme {
	if len(t.All) == 0 {
		return t.Default
	}
	for i, th := range t.All {
		if th == current {
			return t.All[(i+1)%len(t.All)]
		}
	}
	return t.All[0]
}

// ThemeFileError records a theme file that was skipped during a scan.
type ThemeFileError struct {
	File string
	Err  error
}

func (e ThemeFileError) Error() string {
	return fmt.Sprintf("theme %s: %v", e.File, e.Err)
}

func (e ThemeFileError) Unwrap() error {
	return e.Err
}

// themeFile is the on-disk theme schema.
type themeFile struct {
	Name    string        `toml:"name"`
	Palette theme.Palette `toml:"palette"`
}

// LoadThemes scans the themes directory under p and selects the theme whose
// file name matches key. Unreadable files are skipped.
func LoadThemes(p Paths, key string) (Themes, error) {
	themes, _, err := ScanThemes(p.ThemesDir(), key)
	return themes, err
}

// ScanThemes reads every .toml file in dir. A file matches key when its name
// without the extension equals key, or when its full name does; the first
// match in directory order becomes Default, otherwise Default is the built-in
// theme. The built-in theme is appended to All unless ferra.toml was read.
//
// Only a failure to list dir is returned as an error. Files that cannot be
// read or decoded are left out of All and reported in skipped.
func ScanThemes(dir, key string) (themes Themes, skipped []ThemeFileError, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Themes{}, nil, newError(KindIO, err)
	}

	themes.Default = theme.Default()
	matched := false
	hasDefaultFile := false

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, themeExtension) {
			continue
		}

		th, err := readThemeFile(filepath.Join(dir, name))
		if err != nil {
			skipped = append(skipped, ThemeFileError{File: name, Err: err})
			continue
		}

		if !matched && (strings.TrimSuffix(name, themeExtension) == key || name == key) {
			themes.Default = th
			matched = true
		}
		if name == DefaultThemeFileName {
			hasDefaultFile = true
		}
		themes.All = append(themes.All, th)
	}

	if !hasDefaultFile {
		themes.All = append(themes.All, theme.Default())
	}
	return themes, skipped, nil
}

func readThemeFile(path string) (theme.Theme, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return theme.Theme{}, newError(KindIO, err)
	}
	tf := themeFile{Palette: theme.DefaultPalette()}
	if err := toml.Unmarshal(content, &tf); err != nil {
		return theme.Theme{}, newError(KindParse, err)
	}
	return theme.New(tf.Name, tf.Palette), nil
}
