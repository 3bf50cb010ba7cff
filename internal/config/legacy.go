package config

import (
	"os"
	"path/filepath"
)

// HasLegacyConfig reports whether a config.yaml from the old format sits in
// the config root. It only looks; nothing is created.
func HasLegacyConfig(p Paths) bool {
	_, err := os.Stat(filepath.Join(p.Root(), LegacyFileName))
	return err == nil
}
