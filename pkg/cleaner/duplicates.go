package cleaner

import (
	"fmt"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// DuplicateRemover drops rows that repeat an earlier row across all columns.
type DuplicateRemover struct{}

// NewDuplicateRemover creates the remove_duplicates stage.
func NewDuplicateRemover() *DuplicateRemover {
	return &DuplicateRemover{}
}

// Clean keeps the first occurrence of every distinct row.
func (c *DuplicateRemover) Clean(t *table.Table) (string, error) {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]bool, t.NumRows())
	for i := range keep {
		key := t.RowKey(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	removed := t.Retain(keep)
	return fmt.Sprintf("Removed %d duplicate rows.", removed), nil
}

// Name returns the stage identifier.
func (c *DuplicateRemover) Name() string {
	return string(StageRemoveDuplicates)
}
