// Package loader reads delimited text, spreadsheet and HTML table sources
// into a table.Table, deciding every column's kind once at load time.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// Format identifies a source file format.
type Format string

const (
	FormatAuto Format = ""
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// DefaultMaxSize is the input size limit used when Options.MaxSize is zero.
const DefaultMaxSize = 50 * humanize.MByte

var (
	// ErrUnsupportedFormat is returned for unknown file extensions or formats.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrNoHeader is returned when the source has no header row.
	ErrNoHeader = errors.New("no header row")

	// ErrTooLarge is returned when the source exceeds Options.MaxSize.
	ErrTooLarge = errors.New("input too large")

	// ErrNoTable is returned when an HTML source contains no <table>.
	ErrNoTable = errors.New("no table found")
)

// Options configures loading.
type Options struct {
	// Format forces a format instead of detecting it from the extension.
	Format Format

	// Sheet selects the spreadsheet sheet; the first sheet when empty.
	Sheet string

	// MaxSize is the largest accepted input in bytes. Zero means
	// DefaultMaxSize; negative disables the check.
	MaxSize int64

	// Delimiter is the CSV field separator; ',' when zero.
	Delimiter rune
}

func (o Options) maxSize() int64 {
	if o.MaxSize == 0 {
		return DefaultMaxSize
	}
	return o.MaxSize
}

// DetectFormat maps a file name to a format by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatCSV, FormatXLSX, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Load reads the file at path.
func Load(path string, opts Options) (*table.Table, error) {
	if opts.Format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		opts.Format = f
		if strings.EqualFold(filepath.Ext(path), ".tsv") && opts.Delimiter == 0 {
			opts.Delimiter = '\t'
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if limit := opts.maxSize(); limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %s, limit %s", ErrTooLarge, path,
			humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(limit)))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	logger.Debug("loading dataset",
		"path", path,
		"format", opts.Format,
		"size", humanize.Bytes(uint64(info.Size())))

	return Read(file, opts)
}

// Read loads a dataset from r. opts.Format must be set.
func Read(r io.Reader, opts Options) (*table.Table, error) {
	data, err := readLimited(r, opts.maxSize())
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch opts.Format {
	case FormatCSV:
		records, err = csvRecords(data, opts.Delimiter)
	case FormatXLSX:
		records, err = xlsxRecords(data, opts.Sheet)
	case FormatHTML:
		records, err = htmlRecords(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

// readLimited reads all of r, failing once more than limit bytes arrive.
// A leading UTF-8 byte order mark is dropped.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %s", ErrTooLarge, humanize.Bytes(uint64(limit)))
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}
