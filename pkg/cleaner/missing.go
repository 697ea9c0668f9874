package cleaner

import (
	"fmt"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// MissingFiller replaces missing values with the most frequent value of
// their column.
type MissingFiller struct{}

// NewMissingFiller creates the handle_missing stage.
func NewMissingFiller() *MissingFiller {
	return &MissingFiller{}
}

// Clean fills every column that has at least one non-missing value.
// Columns with no observed value are left as they are.
func (c *MissingFiller) Clean(t *table.Table) (string, error) {
	before := t.NullCount()
	for _, col := range t.Columns() {
		fill, ok := Mode(col)
		if !ok {
			continue
		}
		for i, v := range col.Values {
			if v.IsNull() {
				col.Values[i] = fill
			}
		}
	}
	filled := before - t.NullCount()
	return fmt.Sprintf("Filled %d missing values.", filled), nil
}

// Name returns the stage identifier.
func (c *MissingFiller) Name() string {
	return string(StageHandleMissing)
}

// Mode returns the most frequent non-missing value of col. Ties go to the
// smallest value in table.Compare order, so the result does not depend on
// row order. ok is false when the column has no non-missing value.
func Mode(col *table.Column) (mode table.Value, ok bool) {
	counts := make(map[string]int)
	best := 0
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		key := v.Format(col.Kind)
		counts[key]++
		n := counts[key]
		switch {
		case n > best:
			best, mode, ok = n, v, true
		case n == best && table.Compare(v, mode, col.Kind) < 0:
			mode = v
		}
	}
	return mode, ok
}
