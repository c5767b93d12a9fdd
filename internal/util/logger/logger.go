// Package logger wraps log/slog with a handler tuned for a CPU-core
// emulator: timestamped single-line records to a log file, mirrored to
// stderr when debug output is requested or the record is above debug level.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler implements slog.Handler, writing formatted lines to a backing
// file and optionally echoing them to an auxiliary writer (normally
// os.Stderr) when running with debug output enabled.
type Handler struct {
	out   io.Writer
	aux   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, aux: h.aux, h: h.h.WithAttrs(attrs), mu: h.mu, debug: h.debug}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, aux: h.aux, h: h.h.WithGroup(name), mu: h.mu, debug: h.debug}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, level, r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
	}
	result := strings.Join(strs, " ") + "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	if h.aux != nil && (h.debug || r.Level > slog.LevelDebug) {
		_, err = h.aux.Write(b)
	}
	return err
}

// SetDebug toggles whether records are also echoed to the auxiliary writer.
func (h *Handler) SetDebug(debug bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.debug = debug
}

// New builds a Handler writing to file, optionally mirroring to aux
// (pass nil to disable mirroring outright).
func New(file, aux io.Writer, opts *slog.HandlerOptions, debug bool) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: file,
		aux: aux,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu:    &sync.Mutex{},
		debug: debug,
	}
}
