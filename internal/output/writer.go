// Package output renders cleaning reports, previews and the cleaned dataset.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents report format types.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported report formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatJSONL, FormatYAML}
}

// ParseFormat validates a user-supplied report format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format: %s", s)
}

// Writer serializes cleaning reports.
type Writer interface {
	// Write outputs a single report.
	Write(r *Report) error

	// Flush ensures all data is written.
	Flush() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty    bool
	withStats bool
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithStats controls whether the text format appends run statistics.
func WithStats(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.withStats = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty:    true,
		withStats: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatText:
		return NewTextWriter(w, cfg.withStats), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, "  "), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
