package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes reports as JSON.
type JSONWriter struct {
	w       *bufio.Writer
	pretty  bool
	indent  string
	reports []*Report
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:       bufio.NewWriter(w),
		pretty:  pretty,
		indent:  indent,
		reports: make([]*Report, 0, 1),
	}
}

// Write buffers a report until Flush.
func (w *JSONWriter) Write(r *Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// Flush writes a single report as an object and several as an array.
func (w *JSONWriter) Flush() error {
	var v any = w.reports
	if len(w.reports) == 1 {
		v = w.reports[0]
	}

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(v, "", w.indent)
	} else {
		output, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	w.reports = w.reports[:0]
	return w.w.Flush()
}

// JSONLWriter writes one JSON line per cleaning-log entry.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write emits the report's log events immediately.
func (w *JSONLWriter) Write(r *Report) error {
	for _, ev := range r.Events() {
		line, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := w.w.Write(line); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}
