package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes reports as YAML.
type YAMLWriter struct {
	w       *bufio.Writer
	reports []*Report
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:       bufio.NewWriter(w),
		reports: make([]*Report, 0, 1),
	}
}

// Write buffers a report until Flush.
func (w *YAMLWriter) Write(r *Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// Flush writes the buffered reports as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var v any = w.reports
	if len(w.reports) == 1 {
		v = w.reports[0]
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.reports = w.reports[:0]
	return w.w.Flush()
}
