// Package logx builds the slog handlers used by the jot CLI.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New returns a logger writing to w. Pretty output uses colored tint
// records, otherwise plain logfmt-style text.
func New(w io.Writer, levelName string, pretty bool) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var handler slog.Handler
	if pretty {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler), nil
}
