package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const chunkSize = 8 * 1024

// Tail returns at most n lines from the end of the file at path, oldest
// first. A missing file has no lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Read backwards until the buffer holds more than n line breaks or
	// the start of the file.
	offset := info.Size()
	var buf []byte
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		step := min(int64(chunkSize), offset)
		offset -= step
		chunk := make([]byte, step)
		if _, err := file.ReadAt(chunk, offset); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(chunk, buf...)
	}

	text := strings.TrimSuffix(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 {
		// Partial first line.
		lines = lines[1:]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Level is the severity found on a log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// levelTokens maps the abbreviations the text logger writes.
var levelTokens = map[string]Level{
	"DEBU":  LevelDebug,
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERRO":  LevelError,
	"ERROR": LevelError,
	"FATA":  LevelError,
	"FATAL": LevelError,
}

// LevelOf returns the level of the first level token among the leading
// fields of line.
func LevelOf(line string) Level {
	fields := strings.Fields(line)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	for _, f := range fields {
		if lvl, ok := levelTokens[f]; ok {
			return lvl
		}
	}
	return LevelUnknown
}
