package seeder

import (
	"errors"
	"fmt"
)

// Stage names the step of a seed run that failed.
type Stage string

const (
	StageConnect Stage = "connect"
	StageLock    Stage = "lock"
	StageClear   Stage = "clear"
	StageSchema  Stage = "schema"
	StageInsert  Stage = "insert"
)

// SeedError is the single failure type of a seed run. Stage only shapes the log message.
type SeedError struct {
	Stage Stage
	Err   error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Stage, e.Err)
}

func (e *SeedError) Unwrap() error {
	return e.Err
}

func NewSeedError(stage Stage, err error) error {
	return &SeedError{Stage: stage, Err: err}
}

// IsSeedError reports whether err came out of a seed run.
func IsSeedError(err error) bool {
	var se *SeedError
	return errors.As(err, &se)
}
