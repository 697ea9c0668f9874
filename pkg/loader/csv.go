package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// csvRecords parses delimited text. Rows may be shorter than the header;
// quoting errors are load errors.
func csvRecords(data []byte, delimiter rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	if delimiter != 0 {
		r.Comma = delimiter
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return records, nil
}
