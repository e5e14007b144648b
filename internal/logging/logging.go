// Package logging builds the process logger: text on stderr for the
// operator plus a JSON session log file under the data dir.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetDebug switches the process log level between debug and info.
func SetDebug(on bool) {
	if on {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// New returns a logger fanning out to stderr and, when logPath is
// non-empty, an append-only JSON file. A file that cannot be opened is
// reported on stderr and skipped. The returned closer releases the
// file handle; it is always non-nil.
func New(logPath string) (*slog.Logger, io.Closer) {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	handlers := []slog.Handler{stderrHandler}
	closer := io.Closer(nopCloser{})

	if logPath != "" {
		file, err := openLogFile(logPath)
		if err != nil {
			slog.New(stderrHandler).Warn("open session log", "path", logPath, "error", err)
		} else {
			handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
				Level: level,
			}))
			closer = file
		}
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer
}

// NewSilent returns a logger writing only to the session log file,
// for surfaces that own the terminal such as the TUI. Falls back to a
// discard logger when the file cannot be opened.
func NewSilent(logPath string) (*slog.Logger, io.Closer) {
	if logPath != "" {
		file, err := openLogFile(logPath)
		if err == nil {
			handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
			return slog.New(handler), file
		}
	}
	return slog.New(slog.DiscardHandler), nopCloser{}
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
