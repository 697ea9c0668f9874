package cleaner

import (
	"fmt"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// AgeColumn is the only column the invalid-entry rule looks at. The match is
// exact and case-sensitive.
const AgeColumn = "age"

// InvalidEntryRemover drops rows with a negative age.
type InvalidEntryRemover struct{}

// NewInvalidEntryRemover creates the remove_invalid_entries stage.
func NewInvalidEntryRemover() *InvalidEntryRemover {
	return &InvalidEntryRemover{}
}

// Clean drops rows whose age is below zero. Missing ages are kept. Without
// an age column the stage does nothing and reports nothing.
func (c *InvalidEntryRemover) Clean(t *table.Table) (string, error) {
	col, ok := t.Column(AgeColumn)
	if !ok {
		return "", nil
	}

	keep := make([]bool, t.NumRows())
	for i := range keep {
		keep[i] = true
	}

	switch col.Kind {
	case table.Number:
		for i, v := range col.Values {
			if !v.IsNull() && v.Num < 0 {
				keep[i] = false
			}
		}
	case table.Bool:
		// true/false are never negative
	default:
		return "", fmt.Errorf("%w: column %q has kind %s", ErrNonNumericAge, AgeColumn, col.Kind)
	}

	removed := t.Retain(keep)
	return fmt.Sprintf("Removed %d rows with invalid age values.", removed), nil
}

// Name returns the stage identifier.
func (c *InvalidEntryRemover) Name() string {
	return string(StageRemoveInvalidEntries)
}
