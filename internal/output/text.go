package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter renders reports for a terminal: the cleaning log as a bullet
// list, optionally followed by run statistics.
type TextWriter struct {
	w         *bufio.Writer
	withStats bool
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer, withStats bool) *TextWriter {
	return &TextWriter{
		w:         bufio.NewWriter(w),
		withStats: withStats,
	}
}

// Write renders a report.
func (w *TextWriter) Write(r *Report) error {
	fmt.Fprintln(w.w, "### Cleaning Log")
	for _, entry := range r.Log {
		fmt.Fprintf(w.w, "- %s\n", entry)
	}

	if w.withStats && r.Stats != nil {
		fmt.Fprintln(w.w)
		fmt.Fprintf(w.w, "Run: %s\n", r.RunID)
		if _, err := w.w.WriteString(r.Stats.String()); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}
