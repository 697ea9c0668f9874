package cleaner

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/tabclean/pkg/table"
)

var specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)

// SpecialCharRemover strips everything but ASCII letters, digits and spaces
// from text columns.
type SpecialCharRemover struct{}

// NewSpecialCharRemover creates the remove_special_chars stage.
func NewSpecialCharRemover() *SpecialCharRemover {
	return &SpecialCharRemover{}
}

// Clean deletes disallowed characters; missing values pass through.
func (c *SpecialCharRemover) Clean(t *table.Table) (string, error) {
	mapText(t, func(s string) string {
		return specialCharPattern.ReplaceAllString(s, "")
	})
	return "Removed special characters from text columns.", nil
}

// Name returns the stage identifier.
func (c *SpecialCharRemover) Name() string {
	return string(StageRemoveSpecialChars)
}

// WhitespaceTrimmer strips leading and trailing whitespace in text columns.
type WhitespaceTrimmer struct{}

// NewWhitespaceTrimmer creates the trim_whitespace stage.
func NewWhitespaceTrimmer() *WhitespaceTrimmer {
	return &WhitespaceTrimmer{}
}

// Clean trims every non-missing text value.
func (c *WhitespaceTrimmer) Clean(t *table.Table) (string, error) {
	mapText(t, strings.TrimSpace)
	return "Trimmed whitespace from text columns.", nil
}

// Name returns the stage identifier.
func (c *WhitespaceTrimmer) Name() string {
	return string(StageTrimWhitespace)
}

// mapText applies fn to every non-missing value of every Text column.
func mapText(t *table.Table, fn func(string) string) {
	for _, col := range t.Columns() {
		if col.Kind != table.Text {
			continue
		}
		for i, v := range col.Values {
			if v.IsNull() {
				continue
			}
			col.Values[i] = table.TextValue(fn(v.Str))
		}
	}
}
