package output

import (
	"github.com/jmylchreest/tabclean/pkg/cleaner"
)

// Report is the serializable summary of one cleaning run.
type Report struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Stages []string `json:"stages" yaml:"stages"`
	Log    []string `json:"log" yaml:"log"`

	Stats *cleaner.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewReport builds a report for a finished run.
func NewReport(result *cleaner.Result, cfg cleaner.Config, source, output string) *Report {
	stages := make([]string, 0, len(cfg.EnabledStages()))
	for _, id := range cfg.EnabledStages() {
		stages = append(stages, string(id))
	}

	log := result.Log
	if log == nil {
		log = []string{}
	}

	return &Report{
		RunID:  result.RunID,
		Source: source,
		Output: output,
		Stages: stages,
		Log:    log,
		Stats:  result.Stats,
	}
}

// LogEvent is one cleaning-log entry as emitted by the JSONL format.
type LogEvent struct {
	RunID string `json:"run_id"`
	Seq   int    `json:"seq"`
	Stage string `json:"stage,omitempty"`
	Entry string `json:"entry"`
}

// Events returns the report's log as individual events. Stage names are
// attached when the report carries per-stage statistics.
func (r *Report) Events() []LogEvent {
	events := make([]LogEvent, 0, len(r.Log))
	if r.Stats != nil {
		for _, st := range r.Stats.Stages {
			if st.Entry == "" {
				continue
			}
			events = append(events, LogEvent{RunID: r.RunID, Seq: len(events) + 1, Stage: st.Stage, Entry: st.Entry})
		}
		return events
	}
	for i, entry := range r.Log {
		events = append(events, LogEvent{RunID: r.RunID, Seq: i + 1, Entry: entry})
	}
	return events
}
