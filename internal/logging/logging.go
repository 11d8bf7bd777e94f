// Package logging sets up the structured logger shared by the shell.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// levelVar allows changing the log level at runtime.
var levelVar slog.LevelVar

// Init creates a per-launch log file in dir and returns a logger writing to it.
// level: "error" (default), "warn", "info" or "debug".
// The caller should Close the returned file on exit.
func Init(dir, level string) (*slog.Logger, *os.File, error) {
	SetLevel(level)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	name := filepath.Join(dir, "closechat_"+time.Now().Format("20060102_150405")+".log")

	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

// New returns a text logger on w that honors the runtime level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar}))
}

// SetLevel changes the log level without restarting.
func SetLevel(level string) {
	levelVar.Set(ParseLevel(level))
}

// Level returns the current log level as a string.
func Level() string {
	switch levelVar.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// ParseLevel maps a level name to a slog level; unknown names mean error.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ValidLevel reports whether level names a supported level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
