package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaths_DirectoriesAreCreatedOnDemand(t *testing.T) {
	root := filepath.Join(t.TempDir(), "perch")
	p := NewPaths(root)

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("root exists before any accessor ran: %v", err)
	}

	for _, dir := range []string{p.ConfigDir(), p.SoundsDir(), p.ThemesDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%s): %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}

	// idempotent
	if got := p.ThemesDir(); got != filepath.Join(root, "themes") {
		t.Fatalf("ThemesDir = %q, want %q", got, filepath.Join(root, "themes"))
	}
	if got := p.ConfigPath(); got != filepath.Join(root, FileName) {
		t.Fatalf("ConfigPath = %q, want %q", got, filepath.Join(root, FileName))
	}
}

func TestPaths_UnwritableRootPanics(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := NewPaths(filepath.Join(file, "perch"))

	defer func() {
		if recover() == nil {
			t.Fatalf("ConfigDir did not panic for a root below a file")
		}
	}()
	p.ConfigDir()
}

func TestNewPaths_ExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := NewPaths("~/cfg").Root(); got != filepath.Join(home, "cfg") {
		t.Fatalf("Root = %q, want %q", got, filepath.Join(home, "cfg"))
	}
}

func TestDefaultRoot_Precedence(t *testing.T) {
	env := t.TempDir()
	xdg := t.TempDir()

	t.Setenv(envConfigDir, env)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if got := DefaultRoot(); got != env {
		t.Fatalf("DefaultRoot = %q, want env override %q", got, env)
	}

	t.Setenv(envConfigDir, "")
	if got := DefaultRoot(); got != filepath.Join(xdg, AppName) {
		t.Fatalf("DefaultRoot = %q, want %q", got, filepath.Join(xdg, AppName))
	}
}

func TestNewPaths_EmptyUsesDefaultRoot(t *testing.T) {
	env := t.TempDir()
	t.Setenv(envConfigDir, env)

	if got := NewPaths("  ").Root(); got != env {
		t.Fatalf("Root = %q, want %q", got, env)
	}
}

func TestHasLegacyConfig(t *testing.T) {
	root := t.TempDir()
	p := NewPaths(root)
	if HasLegacyConfig(p) {
		t.Fatalf("HasLegacyConfig = true on empty root")
	}
	if err := os.WriteFile(filepath.Join(root, LegacyFileName), []byte("servers: {}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !HasLegacyConfig(p) {
		t.Fatalf("HasLegacyConfig = false, want true")
	}
}

func TestHasLegacyConfig_DoesNotCreateRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "absent")
	if HasLegacyConfig(NewPaths(root)) {
		t.Fatalf("HasLegacyConfig = true for missing root")
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("root was created: %v", err)
	}
}
