package config

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/perch/internal/theme"
)

var nicknamePattern = regexp.MustCompile(`^perch[1-9][0-9]{3}$`)

func TestRandomNicknameWithSeed_Deterministic(t *testing.T) {
	a := RandomNicknameWithSeed(rand.New(rand.NewPCG(7, 11)))
	b := RandomNicknameWithSeed(rand.New(rand.NewPCG(7, 11)))
	if a != b {
		t.Fatalf("same seed gave %q and %q", a, b)
	}
	if !nicknamePattern.MatchString(a) {
		t.Fatalf("nickname %q does not match %s", a, nicknamePattern)
	}
}

func TestRandomNickname_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		if nick := RandomNickname(); !nicknamePattern.MatchString(nick) {
			t.Fatalf("nickname %q does not match %s", nick, nicknamePattern)
		}
	}
}

func TestCreateInitialConfig_WritesTemplate(t *testing.T) {
	p := NewPaths(t.TempDir())

	b := CreateInitialConfigWithRand(p, rand.New(rand.NewPCG(1, 2)))
	if b.Err != nil || !b.Created || b.Skipped {
		t.Fatalf("Bootstrap = %+v, want created", b)
	}
	if b.Path != p.ConfigPath() {
		t.Fatalf("Path = %q, want %q", b.Path, p.ConfigPath())
	}

	data, err := os.ReadFile(p.ConfigPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if strings.Contains(content, nicknamePlaceholder) {
		t.Fatalf("config still contains %s", nicknamePlaceholder)
	}
	if !strings.Contains(content, `nickname = "`+b.Nickname+`"`) {
		t.Fatalf("config does not contain nickname %q", b.Nickname)
	}
}

func TestCreateInitialConfig_ExistingFileUntouched(t *testing.T) {
	p := NewPaths(t.TempDir())
	original := []byte("# mine\n" + minimalConfig)
	writeConfig(t, p, string(original))

	b := CreateInitialConfig(p)
	if !b.Skipped || b.Created || b.Err != nil {
		t.Fatalf("Bootstrap = %+v, want skipped", b)
	}
	data, err := os.ReadFile(p.ConfigPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Fatalf("config changed:\n%s", data)
	}
}

func TestInstallDefaultTheme(t *testing.T) {
	p := NewPaths(t.TempDir())

	b := InstallDefaultTheme(p)
	if !b.Created || b.Err != nil {
		t.Fatalf("Bootstrap = %+v, want created", b)
	}
	if b.Path != filepath.Join(p.ThemesDir(), DefaultThemeFileName) {
		t.Fatalf("Path = %q, want ferra.toml in themes dir", b.Path)
	}

	again := InstallDefaultTheme(p)
	if !again.Skipped || again.Created {
		t.Fatalf("second Bootstrap = %+v, want skipped", again)
	}
}

func TestDefaultThemeFileMatchesBuiltIn(t *testing.T) {
	var tf themeFile
	if err := toml.Unmarshal(defaultThemeFile, &tf); err != nil {
		t.Fatalf("Unmarshal ferra.toml: %v", err)
	}
	if got := theme.New(tf.Name, tf.Palette); got != theme.Default() {
		t.Fatalf("ferra.toml = %+v, want the built-in theme", got)
	}
}

func TestBootstrapThenLoad(t *testing.T) {
	p := NewPaths(t.TempDir())

	InstallDefaultTheme(p)
	b := CreateInitialConfig(p)
	if !b.Created {
		t.Fatalf("Bootstrap = %+v, want created", b)
	}

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Servers) == 0 {
		t.Fatalf("Servers is empty, want the template's server")
	}
	found := false
	for _, name := range cfg.Servers.Names() {
		if cfg.Servers[name].Nickname == b.Nickname {
			found = true
		}
	}
	if !found {
		t.Fatalf("no server uses the generated nickname %q", b.Nickname)
	}
	if cfg.Themes.Default != theme.Default() {
		t.Fatalf("Themes.Default = %q, want Ferra", cfg.Themes.Default.Name)
	}
	if len(cfg.Themes.All) != 1 {
		t.Fatalf("len(Themes.All) = %d, want 1", len(cfg.Themes.All))
	}
}
