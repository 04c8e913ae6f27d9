package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", s, err)
	}

	return lvl, nil
}

// newLogger writes to stderr: colored when it is a terminal, logfmt or JSON
// otherwise.
func newLogger(level slog.Level, jsonOut bool) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level, jsonOut, isatty.IsTerminal(os.Stderr.Fd())))
}

func newHandler(w io.Writer, level slog.Level, jsonOut, terminal bool) slog.Handler {
	switch {
	case jsonOut:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case terminal:
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			NoColor:    runtime.GOOS == "windows",
			TimeFormat: "15:04:05.000",
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
}
