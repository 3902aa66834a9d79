package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// NewLogger builds the process logger. "json" emits structured lines readable by cloud log
// collectors, anything else emits the compact local development format.
func NewLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: CloudLoggerAttributeReplacer,
		}))
	}

	return slog.New(LocalDevHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
		UseColor: true,
	}.NewLocalDevHandler(os.Stdout))
}

// CloudLoggerAttributeReplacer renames "msg" to "message" and "level" to "severity" so that
// cloud log collectors pick up the main message and the severity.
func CloudLoggerAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
		level, _ := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue(severity(level))
	}
	return a
}

func severity(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// LocalDevHandler prints "<time> <LEVEL> <message> " followed by the attributes in text format.
type LocalDevHandler struct {
	opts     LocalDevHandlerOptions
	internal slog.Handler

	mu *sync.Mutex
	w  io.Writer
}

type LocalDevHandlerOptions struct {
	SlogOpts slog.HandlerOptions
	UseColor bool
}

func (opts LocalDevHandlerOptions) NewLocalDevHandler(w io.Writer) *LocalDevHandler {
	internalOpts := opts.SlogOpts
	internalOpts.AddSource = false
	internalOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
			return slog.Attr{}
		}
		if rep := opts.SlogOpts.ReplaceAttr; rep != nil {
			return rep(groups, a)
		}
		return a
	}
	return &LocalDevHandler{
		opts:     opts,
		w:        w,
		mu:       &sync.Mutex{},
		internal: slog.NewTextHandler(w, &internalOpts),
	}
}

func (h *LocalDevHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.internal.Enabled(ctx, level)
}

func (h *LocalDevHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String()
	if h.opts.UseColor {
		level = colorOfLevel(r.Level).Add(level)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s ", r.Time.Format(time.RFC3339), level, r.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.w.Write(buf.Bytes()); err != nil {
		return err
	}
	return h.internal.Handle(ctx, r)
}

func (h *LocalDevHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LocalDevHandler{opts: h.opts, w: h.w, mu: h.mu, internal: h.internal.WithAttrs(attrs)}
}

func (h *LocalDevHandler) WithGroup(name string) slog.Handler {
	return &LocalDevHandler{opts: h.opts, w: h.w, mu: h.mu, internal: h.internal.WithGroup(name)}
}

type Color uint8

const (
	Red     Color = 31
	Yellow  Color = 33
	Blue    Color = 34
	Magenta Color = 35
)

func (c Color) Add(s string) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", uint8(c), s)
}

func colorOfLevel(level slog.Level) Color {
	switch {
	case level < slog.LevelInfo:
		return Magenta
	case level < slog.LevelWarn:
		return Blue
	case level < slog.LevelError:
		return Yellow
	default:
		return Red
	}
}
