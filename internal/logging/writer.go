package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer that forwards each write to slog as one record.
type Writer struct {
	logger *slog.Logger
	level  slog.Level
	msg    string
}

// NewWriter constructs a Writer that logs at debug level under msg.
func NewWriter(logger *slog.Logger, msg string) *Writer {
	return &Writer{logger: logger, level: slog.LevelDebug, msg: msg}
}

// WithLevel returns a copy of the writer logging at level.
func (w *Writer) WithLevel(level Level) *Writer {
	cp := *w
	cp.level = slog.Level(level)
	return &cp
}

// Write logs the given bytes as a single line, trailing newlines removed.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		line := strings.TrimRight(string(p), "\n")
		if line != "" {
			w.logger.Log(context.Background(), w.level, w.msg, "line", line)
		}
	}
	return len(p), nil
}
