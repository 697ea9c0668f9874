package cleaner

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// ChainCleaner applies multiple cleaners in sequence.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a cleaner that applies the given cleaners in the order
// provided. Use NewPipeline to get the fixed stage order from a Config.
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// NewPipeline builds the chain for the stages enabled in cfg, in
// Sequence() order.
func NewPipeline(cfg Config) *ChainCleaner {
	ids := cfg.EnabledStages()
	cleaners := make([]Cleaner, 0, len(ids))
	for _, id := range ids {
		cleaners = append(cleaners, newStage(id))
	}
	return NewChain(cleaners...)
}

// Clean applies all cleaners in sequence to t and returns the combined log.
// The first failing cleaner aborts the chain; t may then be partially
// transformed, so callers hand the chain a table they own.
func (c *ChainCleaner) Clean(t *table.Table) ([]string, error) {
	stats := NewStats()
	if err := c.run(t, stats, logger.With()); err != nil {
		return nil, err
	}
	return stats.Log(), nil
}

// run executes the chain, recording one StageStats per cleaner and logging
// each stage to log.
func (c *ChainCleaner) run(t *table.Table, stats *Stats, log *slog.Logger) error {
	for _, cl := range c.cleaners {
		st := stats.AddStage(cl.Name())
		st.RowsBefore = t.NumRows()
		st.ColumnsBefore = t.NumColumns()

		start := time.Now()
		entry, err := cl.Clean(t)
		st.Duration = time.Since(start)
		if err != nil {
			log.Debug("stage failed", "stage", cl.Name(), "error", err)
			return &StageError{Stage: cl.Name(), Err: err}
		}

		st.Entry = entry
		st.RowsAfter = t.NumRows()
		st.ColumnsAfter = t.NumColumns()
		log.Debug("stage applied",
			"stage", cl.Name(),
			"rows_before", st.RowsBefore,
			"rows_after", st.RowsAfter,
			"duration", st.Duration)
	}
	return nil
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cl := range c.cleaners {
		names[i] = cl.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
