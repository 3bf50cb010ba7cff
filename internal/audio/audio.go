// Package audio resolves notification sound names to loaded sound files.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wailsapp/mimetype"

	"github.com/five82/perch/internal/fsutil"
)

// Extensions are tried, in order, when a sound name has no file extension.
var Extensions = []string{".ogg", ".wav", ".mp3", ".flac"}

// ErrUnsupportedFormat is returned when a sound file is not recognised as audio.
var ErrUnsupportedFormat = errors.New("unsupported sound format")

// ErrNotFound is returned when no file matches a sound name.
var ErrNotFound = errors.New("sound not found")

// Sound is a sound file read into memory.
type Sound struct {
	Name     string
	Path     string
	MIMEType string
	Data     []byte
}

// LoadError describes a sound that could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load resolves name against dir and reads the sound. name may be an absolute
// path, a ~ path, or a file name inside dir with or without its extension.
func Load(dir, name string) (Sound, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Sound{}, &LoadError{Name: name, Err: fmt.Errorf("sound name is empty")}
	}

	path, err := resolve(dir, trimmed)
	if err != nil {
		return Sound{}, &LoadError{Name: trimmed, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Sound{}, &LoadError{Name: trimmed, Err: fmt.Errorf("read sound: %w", err)}
	}

	mime := mimetype.Detect(data)
	if !isAudio(mime) {
		return Sound{}, &LoadError{
			Name: trimmed,
			Err:  fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime.String()),
		}
	}

	return Sound{
		Name:     trimmed,
		Path:     path,
		MIMEType: mime.String(),
		Data:     data,
	}, nil
}

func resolve(dir, name string) (string, error) {
	name, err := fsutil.ExpandHome(name)
	if err != nil {
		return "", err
	}

	candidates := []string{name}
	if !filepath.IsAbs(name) {
		candidates = []string{filepath.Join(dir, name)}
	}
	if filepath.Ext(name) == "" {
		base := candidates[0]
		for _, ext := range Extensions {
			candidates = append(candidates, base+ext)
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

func isAudio(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") || m.Is("application/ogg") {
			return true
		}
	}
	return false
}
