package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// traceHandler is a minimal slog.Handler that renders one compact
// "time level message attrs..." line per record to an io.Writer. It
// exists so -v's verbose trace doesn't pull in slog's default
// key=value multi-line text handler, whose output is noisier than a
// single-line-per-decision trace needs to be.
type traceHandler struct {
	out io.Writer
}

func newTraceHandler(w io.Writer) *traceHandler {
	return &traceHandler{out: w}
}

func (h *traceHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelDebug
}

func (h *traceHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("15:04:05.000"), r.Level.String(), r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	_, err := fmt.Fprintln(h.out, strings.Join(parts, " "))
	return err
}

func (h *traceHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *traceHandler) WithGroup(_ string) slog.Handler      { return h }
