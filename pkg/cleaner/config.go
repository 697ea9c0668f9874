package cleaner

// Config holds the seven stage switches. Any combination is valid; the
// stages still run in Sequence() order.
type Config struct {
	// RemoveDuplicates drops exact duplicate rows, keeping the first.
	RemoveDuplicates bool `json:"remove_duplicates" yaml:"remove_duplicates" mapstructure:"remove_duplicates"`

	// HandleMissing fills missing values with the column mode.
	HandleMissing bool `json:"handle_missing" yaml:"handle_missing" mapstructure:"handle_missing"`

	// RemoveOutliers drops rows with |z| > 3 on any numeric column.
	RemoveOutliers bool `json:"remove_outliers" yaml:"remove_outliers" mapstructure:"remove_outliers"`

	// StandardizeColumns rewrites column names to trimmed snake-ish lowercase.
	StandardizeColumns bool `json:"standardize_columns" yaml:"standardize_columns" mapstructure:"standardize_columns"`

	// RemoveSpecialChars keeps only ASCII letters, digits and spaces in text columns.
	RemoveSpecialChars bool `json:"remove_special_chars" yaml:"remove_special_chars" mapstructure:"remove_special_chars"`

	// RemoveInvalidEntries drops rows with a negative age.
	RemoveInvalidEntries bool `json:"remove_invalid_entries" yaml:"remove_invalid_entries" mapstructure:"remove_invalid_entries"`

	// TrimWhitespace strips surrounding whitespace in text columns.
	TrimWhitespace bool `json:"trim_whitespace" yaml:"trim_whitespace" mapstructure:"trim_whitespace"`
}

// DefaultConfig returns a config with every stage disabled. Running it
// returns the input unchanged with an empty log.
func DefaultConfig() Config {
	return Config{}
}

// PresetAll enables every stage.
func PresetAll() Config {
	return Config{
		RemoveDuplicates:     true,
		HandleMissing:        true,
		RemoveOutliers:       true,
		StandardizeColumns:   true,
		RemoveSpecialChars:   true,
		RemoveInvalidEntries: true,
		TrimWhitespace:       true,
	}
}

// Enabled reports whether the stage is switched on.
func (c Config) Enabled(id StageID) bool {
	switch id {
	case StageRemoveDuplicates:
		return c.RemoveDuplicates
	case StageHandleMissing:
		return c.HandleMissing
	case StageRemoveOutliers:
		return c.RemoveOutliers
	case StageStandardizeColumns:
		return c.StandardizeColumns
	case StageRemoveSpecialChars:
		return c.RemoveSpecialChars
	case StageRemoveInvalidEntries:
		return c.RemoveInvalidEntries
	case StageTrimWhitespace:
		return c.TrimWhitespace
	default:
		return false
	}
}

// Set switches a stage on or off. Unknown stages are ignored.
func (c *Config) Set(id StageID, enabled bool) {
	switch id {
	case StageRemoveDuplicates:
		c.RemoveDuplicates = enabled
	case StageHandleMissing:
		c.HandleMissing = enabled
	case StageRemoveOutliers:
		c.RemoveOutliers = enabled
	case StageStandardizeColumns:
		c.StandardizeColumns = enabled
	case StageRemoveSpecialChars:
		c.RemoveSpecialChars = enabled
	case StageRemoveInvalidEntries:
		c.RemoveInvalidEntries = enabled
	case StageTrimWhitespace:
		c.TrimWhitespace = enabled
	}
}

// EnabledStages returns the enabled stages in execution order.
func (c Config) EnabledStages() []StageID {
	var ids []StageID
	for _, id := range sequence {
		if c.Enabled(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Merge returns a config with every stage enabled in either c or other.
func (c Config) Merge(other Config) Config {
	merged := c
	for _, id := range sequence {
		if other.Enabled(id) {
			merged.Set(id, true)
		}
	}
	return merged
}
