package cleaner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// Clean runs the stages enabled in cfg over ds and returns the cleaned table
// and the cleaning log.
//
// ds itself is never modified: the pipeline works on its own copy and only
// hands it back when every stage succeeded. On failure the error is a
// *StageError naming the stage and no table is returned.
func Clean(ds *table.Table, cfg Config) (*table.Table, []string, error) {
	result, err := CleanWithStats(ds, cfg)
	if err != nil {
		return nil, nil, err
	}
	return result.Table, result.Log, nil
}

// CleanWithStats is Clean with per-stage statistics and a run identifier.
func CleanWithStats(ds *table.Table, cfg Config) (*Result, error) {
	if ds == nil {
		return nil, ErrNilTable
	}

	startTime := time.Now()
	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	work := ds.Clone()
	stats := NewStats()
	stats.InputRows = work.NumRows()
	stats.InputColumns = work.NumColumns()

	pipeline := NewPipeline(cfg)
	log.Debug("cleaning started",
		"pipeline", pipeline.Name(),
		"rows", stats.InputRows,
		"columns", stats.InputColumns)

	if err := pipeline.run(work, stats, log); err != nil {
		log.Error("cleaning failed", "error", err)
		return nil, err
	}

	stats.OutputRows = work.NumRows()
	stats.OutputColumns = work.NumColumns()
	stats.TotalDuration = time.Since(startTime)

	log.Debug("cleaning finished",
		"rows", stats.OutputRows,
		"columns", stats.OutputColumns,
		"duration", stats.TotalDuration)

	return &Result{
		RunID: runID,
		Table: work,
		Log:   stats.Log(),
		Stats: stats,
	}, nil
}
