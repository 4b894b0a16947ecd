// Package ioutil provides I/O helpers.
package ioutil

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Writer wraps an [io.Writer] and keeps the first write error.
// After a failure all later writes are skipped and return that error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new Writer wrapping w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements [io.Writer].
func (cw *Writer) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, errtrace.Wrap(cw.err)
	}
	n, err := cw.w.Write(p)
	if err != nil {
		cw.err = err
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Printf writes formatted output.
func (cw *Writer) Printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	fmt.Fprintf(cw, format, args...) //nolint:errcheck
}

// Err returns the first write error.
func (cw *Writer) Err() error { return errtrace.Wrap(cw.err) }
