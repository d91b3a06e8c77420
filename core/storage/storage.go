package storage

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound is returned when no run was stored under the requested start time.
var ErrRunNotFound = errors.New("storage: run not found")

// Measurement holds the averaged timings of one benchmark suite.
type Measurement struct {
	Suite    string
	Impl     string
	BaseSize int
	Runs     int
	Averages map[string]time.Duration // keyed by operation name
}

// Run is one invocation of the benchmark, identified by its start time.
type Run struct {
	Started time.Time
	Results []Measurement
}

// Storage defines the interface for benchmark run history
type Storage interface {
	// SaveRun persists a run, replacing any run with the same start time
	SaveRun(ctx context.Context, run Run) error

	// LoadRun retrieves a run
	LoadRun(ctx context.Context, started time.Time) (Run, error)

	// DeleteRun removes a run
	DeleteRun(ctx context.Context, started time.Time) error

	// ListRuns returns the start times of stored runs in [start, end), ascending
	ListRuns(ctx context.Context, start, end time.Time) ([]time.Time, error)
}
