package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level resolves the log level: LOG_LEVEL wins over the configured one,
// anything unknown falls back to info.
func Level(configured string) slog.Level {
	if env, ok := logLevelMapping[strings.ToLower(os.Getenv("LOG_LEVEL"))]; ok {
		return env
	}
	if level, ok := logLevelMapping[strings.ToLower(configured)]; ok {
		return level
	}
	return slog.LevelInfo
}

// New builds a JSON logger writing to w, tagged with the session id.
func New(w io.Writer, sessionID string, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(level),
	})).With("session_id", sessionID)
}

// InitDefault installs the session logger as the slog default. Callers pass
// stderr; stdout is left to reports.
func InitDefault(w io.Writer, sessionID string, level string) *slog.Logger {
	logger := New(w, sessionID, level)
	slog.SetDefault(logger)
	return logger
}
