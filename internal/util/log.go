// Package util holds small helpers shared by every binary.
package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a JSON logger writing to stdout at the requested level.
// Unknown level strings fall back to info.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil { lvl = zerolog.InfoLevel }
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}

// NewStderrLogger is NewLogger pointed at stderr, for binaries whose stdout
// carries machine readable payloads.
func NewStderrLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil { lvl = zerolog.InfoLevel }
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}
