package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// DefaultCSVPath is where the cleaned dataset is written when no path is given.
const DefaultCSVPath = "cleaned_data.csv"

// WriteTable writes t as CSV: one header row, then one record per row.
// There is no index column; missing values are written as empty fields.
func WriteTable(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Names()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	columns := t.Columns()
	record := make([]string, len(columns))
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range columns {
			record[j] = col.Values[i].Format(col.Kind)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTableFile writes t to path, creating parent directories as needed.
func WriteTableFile(path string, t *table.Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	logger.Debug("writing csv",
		"path", path,
		"rows", t.NumRows(),
		"columns", t.NumColumns())

	if err := WriteTable(file, t); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
