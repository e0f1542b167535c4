// Package logging sets up the slog logger. The TUI owns the terminal, so
// records go to a file under the state directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns $XDG_STATE_HOME/javalearn, falling back to
// ~/.local/state/javalearn.
func Dir() (string, error) {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "javalearn"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "javalearn"), nil
}

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Setup opens the log file and returns a logger plus a close func.
// If the file cannot be opened the logger discards everything.
func Setup(level string) (*slog.Logger, func(), error) {
	dir, err := Dir()
	if err != nil {
		return Discard(), func() {}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Discard(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "javalearn.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), func() { f.Close() }, nil
}

// Discard returns a logger that drops all records.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
