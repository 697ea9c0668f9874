package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// StageStats captures what a single stage did.
type StageStats struct {
	Stage string `json:"stage" yaml:"stage"`
	Entry string `json:"entry,omitempty" yaml:"entry,omitempty"`

	RowsBefore    int `json:"rows_before" yaml:"rows_before"`
	RowsAfter     int `json:"rows_after" yaml:"rows_after"`
	ColumnsBefore int `json:"columns_before" yaml:"columns_before"`
	ColumnsAfter  int `json:"columns_after" yaml:"columns_after"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// RowsRemoved returns how many rows the stage dropped.
func (s *StageStats) RowsRemoved() int {
	return s.RowsBefore - s.RowsAfter
}

// Stats captures metrics about a whole pipeline run.
type Stats struct {
	InputRows     int `json:"input_rows" yaml:"input_rows"`
	InputColumns  int `json:"input_columns" yaml:"input_columns"`
	OutputRows    int `json:"output_rows" yaml:"output_rows"`
	OutputColumns int `json:"output_columns" yaml:"output_columns"`

	Stages []*StageStats `json:"stages" yaml:"stages"`

	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a new Stats instance.
func NewStats() *Stats {
	return &Stats{
		Stages: make([]*StageStats, 0, len(sequence)),
	}
}

// AddStage appends a stage record and returns it for filling in.
func (s *Stats) AddStage(name string) *StageStats {
	st := &StageStats{Stage: name}
	s.Stages = append(s.Stages, st)
	return st
}

// GetStage returns the record for a stage, or nil if it did not run.
func (s *Stats) GetStage(name string) *StageStats {
	for _, st := range s.Stages {
		if st.Stage == name {
			return st
		}
	}
	return nil
}

// Log returns the cleaning log: the non-empty stage entries in execution order.
func (s *Stats) Log() []string {
	log := make([]string, 0, len(s.Stages))
	for _, st := range s.Stages {
		if st.Entry != "" {
			log = append(log, st.Entry)
		}
	}
	return log
}

// RowsRemoved returns the number of rows dropped by the run.
func (s *Stats) RowsRemoved() int {
	return s.InputRows - s.OutputRows
}

// ReductionPercent returns the percentage of input rows removed.
func (s *Stats) ReductionPercent() float64 {
	if s.InputRows == 0 {
		return 0
	}
	return float64(s.RowsRemoved()) / float64(s.InputRows) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Rows: %s -> %s (%.1f%% removed)\n",
		humanize.Comma(int64(s.InputRows)), humanize.Comma(int64(s.OutputRows)), s.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("Columns: %d -> %d\n", s.InputColumns, s.OutputColumns))

	if len(s.Stages) > 0 {
		sb.WriteString("Stages:\n")
		for _, st := range s.Stages {
			sb.WriteString(fmt.Sprintf("  %-24s rows %d -> %d  %v\n",
				st.Stage, st.RowsBefore, st.RowsAfter, st.Duration.Round(time.Microsecond)))
		}
	}

	sb.WriteString(fmt.Sprintf("Timing: total=%v\n", s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}

// Result contains the output of a cleaning run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string `json:"run_id" yaml:"run_id"`

	// Table is the cleaned dataset, owned by the caller.
	Table *table.Table `json:"-" yaml:"-"`

	// Log is the ordered cleaning log.
	Log []string `json:"log" yaml:"log"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`
}
