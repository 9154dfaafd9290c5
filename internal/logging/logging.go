package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a *slog.Logger emitting JSON to stderr, teeing to logFile when
// one is given, and installs it as the slog default. The returned cleanup
// closes the log file; callers must defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	out := io.Writer(os.Stderr)
	cleanup := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stderr, f)
		cleanup = func() { _ = f.Close() }
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
