// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger provides a context-aware logger built on [slog].
//
// Commands put a [Logger] into the context once, and library code such as the
// header transformer pulls it out with [Get] or one of the level helpers. A
// context without a logger gets one that discards everything, so library
// callers never have to configure logging.
package logger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// Logf is a printf-style logging function. It also implements [io.Writer],
// so it can be handed to anything that wants a writer.
type Logf func(format string, args ...any)

// Write logs p as a single message.
func (f Logf) Write(p []byte) (int, error) {
	f("%s", p)
	return len(p), nil
}

// fanout sends each record to every attached handler that accepts its level.
type fanout struct {
	mu       sync.RWMutex
	handlers []slog.Handler
}

func (h *fanout) snapshot() []slog.Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handlers
}

func (h *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.snapshot() {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, hh := range h.snapshot() {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h *fanout) derive(f func(slog.Handler) slog.Handler) slog.Handler {
	hs := h.snapshot()
	derived := make([]slog.Handler, len(hs))
	for i, hh := range hs {
		derived[i] = f(hh)
	}
	return &fanout{handlers: derived}
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(hh slog.Handler) slog.Handler { return hh.WithAttrs(attrs) })
}

func (h *fanout) WithGroup(name string) slog.Handler {
	return h.derive(func(hh slog.Handler) slog.Handler { return hh.WithGroup(name) })
}

func (h *fanout) attach(hh slog.Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers[:len(h.handlers):len(h.handlers)], hh)
}

// Logger wraps an [slog.Logger] whose handlers can be attached at runtime.
// Level controls every handler created through [Logger.AttachTerminal].
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar

	out *fanout
}

// New creates a Logger with no handlers. If level is nil, a new
// [slog.LevelVar] set to LevelInfo is used.
func New(level *slog.LevelVar) *Logger {
	if level == nil {
		level = new(slog.LevelVar)
		level.Set(slog.LevelInfo)
	}
	out := new(fanout)
	return &Logger{Logger: slog.New(out), Level: level, out: out}
}

// Attach adds a handler to the logger.
func (l *Logger) Attach(h slog.Handler) { l.out.attach(h) }

// AttachTerminal adds a human-readable handler writing to w. Colors are
// emitted only when color is true, which callers decide by checking whether
// w is a terminal.
func (l *Logger) AttachTerminal(w io.Writer, color bool) {
	l.Attach(NewTerminalHandler(w, l.Level, color))
}

// NewTerminalHandler returns a [tint] handler writing to w at the given level.
func NewTerminalHandler(w io.Writer, level slog.Leveler, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	})
}

var defaultLogger = New(nil)

// Put returns a copy of ctx carrying l.
func Put(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Get returns the [Logger] carried by ctx, or a default one that discards
// all messages.
func Get(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// IsDefault reports whether l is the discarding default [Logger].
func IsDefault(l *Logger) bool { return l == defaultLogger }

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs a warning message.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
