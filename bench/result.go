package bench

import (
	"time"

	"github.com/konradgierczak7/SD-projekt-2/core/storage"
)

// Result holds the timings collected by one suite.
type Result struct {
	Suite     string
	Impl      Impl
	BaseSize  int
	Runs      int
	Seed      uint64
	Completed int                      // runs that finished
	Ops       []string                 // operations in timing order
	Totals    map[string]time.Duration // summed over completed runs
	Misses    map[string]int           // calls that reported a missing key
}

func newResult(s Suite) Result {
	return Result{
		Suite:    s.Name,
		Impl:     s.Impl,
		BaseSize: s.BaseSize,
		Runs:     s.Runs,
		Seed:     s.Seed,
		Ops:      OperationsFor(s.Impl),
		Totals:   make(map[string]time.Duration),
		Misses:   make(map[string]int),
	}
}

// Average returns the mean duration of op over the completed runs.
func (r Result) Average(op string) time.Duration {
	if r.Completed == 0 {
		return 0
	}
	return r.Totals[op] / time.Duration(r.Completed)
}

// Measurement converts the result into its stored form.
func (r Result) Measurement() storage.Measurement {
	avg := make(map[string]time.Duration, len(r.Ops))
	for _, op := range r.Ops {
		avg[op] = r.Average(op)
	}
	return storage.Measurement{
		Suite:    r.Suite,
		Impl:     string(r.Impl),
		BaseSize: r.BaseSize,
		Runs:     r.Completed,
		Averages: avg,
	}
}

// ToRun bundles results into a storable run.
func ToRun(started time.Time, results []Result) storage.Run {
	run := storage.Run{Started: started}
	for _, r := range results {
		run.Results = append(run.Results, r.Measurement())
	}
	return run
}
