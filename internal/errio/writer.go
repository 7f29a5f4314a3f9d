// Package errio provides a small io.Writer wrapper that latches the
// first write error instead of failing silently partway through a
// multi-write output pass.
package errio

import (
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer for fv1's Intel HEX encoder, which emits a
// program as many small writes in one pass (one per record) and has no
// use for checking each call individually. Once Err is set every later
// Write is a no-op that returns the same error, so the caller checks
// Err once at the end; BytesWritten tracks how much output actually
// reached the underlying writer before that happened, since a HEX
// file that stops partway through is silently corrupt rather than
// merely absent, and the byte count is what tells a caller how far
// into the output that happened.
type Writer struct {
	w            io.Writer
	BytesWritten int64
	Err          error
}

// NewWriter returns a new Writer wrapping w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	w.BytesWritten += int64(n)
	if err != nil {
		w.Err = errors.Wrapf(err, "write failed after %d bytes", w.BytesWritten)
	}
	return n, w.Err
}
