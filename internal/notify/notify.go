// Package notify is the single notification contract for command
// outcomes. Every screen reports success and failure through it; there
// is no transient/blocking split.
package notify

import (
	"fmt"
	"io"
)

// Notifier reports user-facing action outcomes.
type Notifier interface {
	Successf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Writer prints notifications to a pair of streams, success to out and
// errors to errOut.
type Writer struct {
	out    io.Writer
	errOut io.Writer
}

// NewWriter creates a stream-backed notifier.
func NewWriter(out, errOut io.Writer) *Writer {
	return &Writer{out: out, errOut: errOut}
}

func (w *Writer) Successf(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

func (w *Writer) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(w.errOut, "Error: "+format+"\n", args...)
}
