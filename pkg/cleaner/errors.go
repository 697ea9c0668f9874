package cleaner

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTable is returned when Clean is called without a dataset.
	ErrNilTable = errors.New("dataset is nil")

	// ErrNonNumericAge is returned when the age column is not numeric.
	ErrNonNumericAge = errors.New("age column is not numeric")

	// ErrUnknownStage is returned for a stage identifier outside Sequence().
	ErrUnknownStage = errors.New("unknown stage")
)

// StageError reports which stage aborted a pipeline run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
