package config

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure.
type Kind int

const (
	// KindRead means the config file could not be read.
	KindRead Kind = iota + 1
	// KindIO means a filesystem operation other than the config read failed.
	KindIO
	// KindParse means the TOML was malformed or failed validation.
	KindParse
	// KindLoadSounds means a notification sound could not be loaded.
	KindLoadSounds
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindLoadSounds:
		return "load sounds"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type returned by Load and the theme loaders.
// Message is captured from the cause; match on Kind, not on Message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRead:
		return "config could not be read: " + e.Message
	case KindLoadSounds:
		return "error loading sound: " + e.Message
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind, true
	}
	return 0, false
}
