// Package cleaner implements the tabular cleaning pipeline: seven optional
// stages applied in a fixed order to a table, each reporting what it did.
package cleaner

import "github.com/jmylchreest/tabclean/pkg/table"

// Cleaner is a single pipeline stage.
type Cleaner interface {
	// Clean transforms t in place and returns the log entry describing the
	// change. An empty entry means the stage has nothing to report and no
	// line is added to the cleaning log.
	Clean(t *table.Table) (string, error)

	// Name returns the stage identifier for logging/debugging.
	Name() string
}
