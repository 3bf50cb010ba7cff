// Package prefs persists inspector preferences that are not part of the user's
// config file. They live in <config root>/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds inspector state remembered between runs.
type Prefs struct {
	// PreviewTheme is the theme name last selected for preview. Empty means
	// the config's default theme.
	PreviewTheme  string `toml:"preview_theme"`
	SidebarHidden bool   `toml:"sidebar_hidden"`
}

// Load reads preferences from path. A missing or unreadable file yields zero
// Prefs; preferences are never worth failing startup over.
func Load(path string) (Prefs, error) {
	var prefs Prefs
	if strings.TrimSpace(path) == "" {
		return prefs, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{}, nil // Graceful degradation
	}
	prefs.PreviewTheme = strings.TrimSpace(prefs.PreviewTheme)
	return prefs, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("prefs path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
