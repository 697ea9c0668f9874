package cleaner

import (
	"fmt"
	"strings"
)

// StageID names one pipeline stage.
type StageID string

const (
	StageRemoveDuplicates     StageID = "remove_duplicates"
	StageHandleMissing        StageID = "handle_missing"
	StageRemoveOutliers       StageID = "remove_outliers"
	StageStandardizeColumns   StageID = "standardize_columns"
	StageRemoveSpecialChars   StageID = "remove_special_chars"
	StageRemoveInvalidEntries StageID = "remove_invalid_entries"
	StageTrimWhitespace       StageID = "trim_whitespace"
)

// sequence is the order stages always run in, whatever subset is enabled.
var sequence = [...]StageID{
	StageRemoveDuplicates,
	StageHandleMissing,
	StageRemoveOutliers,
	StageStandardizeColumns,
	StageRemoveSpecialChars,
	StageRemoveInvalidEntries,
	StageTrimWhitespace,
}

var descriptions = map[StageID]string{
	StageRemoveDuplicates:     "Drop rows identical to an earlier row, keeping the first",
	StageHandleMissing:        "Fill missing values with the most frequent value of their column",
	StageRemoveOutliers:       "Drop rows with a numeric value more than 3 standard deviations from its column mean",
	StageStandardizeColumns:   "Trim, lowercase and underscore column names",
	StageRemoveSpecialChars:   "Keep only ASCII letters, digits and spaces in text columns",
	StageRemoveInvalidEntries: "Drop rows with a negative value in the age column",
	StageTrimWhitespace:       "Strip leading and trailing whitespace in text columns",
}

// Sequence returns the fixed stage order.
func Sequence() []StageID {
	out := make([]StageID, len(sequence))
	copy(out, sequence[:])
	return out
}

// Description returns a one-line summary of what the stage does.
func (id StageID) Description() string {
	return descriptions[id]
}

// newStage returns the implementation for id.
func newStage(id StageID) Cleaner {
	switch id {
	case StageRemoveDuplicates:
		return NewDuplicateRemover()
	case StageHandleMissing:
		return NewMissingFiller()
	case StageRemoveOutliers:
		return NewOutlierRemover()
	case StageStandardizeColumns:
		return NewColumnStandardizer()
	case StageRemoveSpecialChars:
		return NewSpecialCharRemover()
	case StageRemoveInvalidEntries:
		return NewInvalidEntryRemover()
	case StageTrimWhitespace:
		return NewWhitespaceTrimmer()
	default:
		return nil
	}
}

// ParseStage resolves a stage identifier such as "trim_whitespace".
// Dashes are accepted in place of underscores.
func ParseStage(s string) (StageID, error) {
	id := StageID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range sequence {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}
