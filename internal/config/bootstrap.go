package config

import (
	crand "crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

const nicknamePlaceholder = "__NICKNAME__"

var (
	//go:embed assets/config.toml
	configTemplate string

	//go:embed assets/themes/ferra.toml
	defaultThemeFile []byte
)

// Bootstrap describes what a first-run write did. Write failures are not
// returned as errors; they are kept in Err and otherwise surface on the next
// Load.
type Bootstrap struct {
	Path     string
	Created  bool
	Skipped  bool // the file already existed
	Nickname string
	Err      error
}

// CreateInitialConfig writes the config template with a random nickname if
// no config file exists yet. An existing file is never touched.
func CreateInitialConfig(p Paths) Bootstrap {
	return CreateInitialConfigWithRand(p, newNicknameRand())
}

// CreateInitialConfigWithRand is CreateInitialConfig with a caller-supplied
// source for the nickname.
func CreateInitialConfigWithRand(p Paths, r *rand.Rand) Bootstrap {
	path := p.ConfigPath()
	if exists(path) {
		return Bootstrap{Path: path, Skipped: true}
	}

	nick := RandomNicknameWithSeed(r)
	content := strings.ReplaceAll(configTemplate, nicknamePlaceholder, nick)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Bootstrap{Path: path, Nickname: nick, Err: fmt.Errorf("write initial config: %w", err)}
	}
	return Bootstrap{Path: path, Created: true, Nickname: nick}
}

// InstallDefaultTheme writes the built-in theme file into the themes
// directory unless a file with that name is already there.
func InstallDefaultTheme(p Paths) Bootstrap {
	path := filepath.Join(p.ThemesDir(), DefaultThemeFileName)
	if exists(path) {
		return Bootstrap{Path: path, Skipped: true}
	}
	if err := os.WriteFile(path, defaultThemeFile, 0o644); err != nil {
		return Bootstrap{Path: path, Err: fmt.Errorf("write default theme: %w", err)}
	}
	return Bootstrap{Path: path, Created: true}
}

// RandomNickname returns "perch" followed by four random digits.
func RandomNickname() string {
	return RandomNicknameWithSeed(newNicknameRand())
}

// RandomNicknameWithSeed draws the nickname digits from r, so a fixed seed
// always gives the same nickname.
func RandomNicknameWithSeed(r *rand.Rand) string {
	return fmt.Sprintf("%s%d", AppName, r.IntN(9000)+1000)
}

func newNicknameRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
