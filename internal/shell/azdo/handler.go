package azdo

import (
	"context"
	"log/slog"
)

// LogHandler wraps a slog.Handler and mirrors every record at Warn or above
// as a logissue command, so problems surface on the build summary.
type LogHandler struct {
	inner    slog.Handler
	commands *Commands
}

// NewLogHandler wraps inner.
func NewLogHandler(inner slog.Handler, commands *Commands) *LogHandler {
	return &LogHandler{inner: inner, commands: commands}
}

// Enabled implements slog.Handler.
func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	switch {
	case r.Level >= slog.LevelError:
		return h.commands.LogIssue(IssueError, r.Message)
	case r.Level >= slog.LevelWarn:
		return h.commands.LogIssue(IssueWarning, r.Message)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{inner: h.inner.WithAttrs(attrs), commands: h.commands}
}

// WithGroup implements slog.Handler.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{inner: h.inner.WithGroup(name), commands: h.commands}
}
