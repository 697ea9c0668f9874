package cleaner

import (
	"strings"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// ColumnStandardizer rewrites column names to a uniform style.
type ColumnStandardizer struct{}

// NewColumnStandardizer creates the standardize_columns stage.
func NewColumnStandardizer() *ColumnStandardizer {
	return &ColumnStandardizer{}
}

// Clean renames every column. Names that collide after rewriting are not
// deduplicated: the later column replaces the earlier one.
func (c *ColumnStandardizer) Clean(t *table.Table) (string, error) {
	names := t.Names()
	for i, name := range names {
		names[i] = StandardizeName(name)
	}
	for _, name := range t.Rename(names) {
		logger.Warn("column name collision, earlier column overwritten", "column", name)
	}
	return "Standardized column names.", nil
}

// Name returns the stage identifier.
func (c *ColumnStandardizer) Name() string {
	return string(StageStandardizeColumns)
}

// StandardizeName trims surrounding whitespace, lowercases, and replaces
// spaces with underscores.
func StandardizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
