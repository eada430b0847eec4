// Package diag provides the low-level diagnostic channel for the host link.
//
// Failures that concern the message transport itself must never be reported
// through the normal logging path: on platforms where logging is forwarded
// over the very link that failed, that would recurse. The diag handler
// writes synchronously to a local io.Writer (stderr by default) and depends
// on nothing in this module.
package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Handler implements slog.Handler with a single synchronous write per
// record and no buffering, so a line is on the wire before the caller
// proceeds.
type Handler struct {
	opts handlerConfig
	mu   *sync.Mutex
	w    io.Writer

	// prefix holds attributes from WithAttrs, already rendered with the
	// group qualifier that was in effect when they were added.
	prefix []byte
	group  string
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Level
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{level: slog.LevelDebug}
}

// WithLevel sets the minimum level the handler reports.
// Diagnostics default to LevelDebug: when this channel is in use, something
// is already wrong.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{opts: cfg, mu: &sync.Mutex{}, w: w}
}

// Default returns a logger on the always-available channel: stderr, all
// levels.
func Default() *slog.Logger {
	return slog.New(NewHandler(os.Stderr))
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle writes one line: time, level, message, then key=value attributes.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	buf := make([]byte, 0, 128)
	buf = record.Time.AppendFormat(buf, time.RFC3339)
	buf = append(buf, ' ')
	buf = append(buf, record.Level.String()...)
	buf = append(buf, ' ')
	buf = append(buf, record.Message...)
	buf = append(buf, h.prefix...)
	record.Attrs(func(attr slog.Attr) bool {
		buf = h.appendAttr(buf, attr)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *Handler) appendAttr(buf []byte, attr slog.Attr) []byte {
	buf = append(buf, ' ')
	if h.group != "" {
		buf = append(buf, h.group...)
		buf = append(buf, '.')
	}
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	return fmt.Appendf(buf, "%v", attr.Value.Resolve().Any())
}

// WithAttrs returns a Handler that prepends the given attributes to every
// record. The writer and its mutex are shared with the parent.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	prefix := h.prefix[:len(h.prefix):len(h.prefix)]
	for _, attr := range attrs {
		prefix = h.appendAttr(prefix, attr)
	}
	clone.prefix = prefix
	return &clone
}

// WithGroup returns a Handler qualifying attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}
