package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/konradgierczak7/SD-projekt-2/core/monitoring"
)

// options defines the configuration of a Runner.
type options struct {
	logger   *zap.Logger
	stats    monitoring.Stats
	now      func() time.Time
	parallel bool
}

// Option is a function that configures a Runner.
type Option func(*options)

// WithLogger sets the logger for run progress.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStats sets the recorder that receives every timed operation.
func WithStats(s monitoring.Stats) Option {
	return func(o *options) {
		o.stats = s
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithParallel lets RunAll execute suites concurrently. Each suite still
// owns its queue; only timings are affected by the contention.
func WithParallel(parallel bool) Option {
	return func(o *options) {
		o.parallel = parallel
	}
}

func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
		stats:  monitoring.NopStats(),
		now:    time.Now,
	}
}

// Runner executes suites.
type Runner struct {
	opts options
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner{opts: o}
}

// Run executes every run of the suite and returns the summed timings.
// The context is checked between runs.
func (r *Runner) Run(ctx context.Context, s Suite) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	res := newResult(s)
	err := r.run(ctx, s, &res)
	if err != nil {
		r.opts.stats.RecordSuiteError(ctx, s.Name, err)
		return res, err
	}

	r.opts.logger.Info("suite finished",
		zap.String("suite", s.Name),
		zap.String("impl", string(s.Impl)),
		zap.Int("runs", s.Runs),
	)
	return res, nil
}

func (r *Runner) run(ctx context.Context, s Suite, res *Result) error {
	p := planFor(s.Impl)
	rng := rand.New(rand.NewPCG(s.Seed, uint64(s.BaseSize)))
	t := newTarget(s.Impl, r.opts.logger)

	r.opts.logger.Info("suite started",
		zap.String("suite", s.Name),
		zap.Int("base_size", s.BaseSize),
		zap.Int("runs", s.Runs),
	)

	for run := 0; run < s.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("suite %s interrupted after %d runs: %w", s.Name, run, err)
		}

		t.reset()
		for i := 0; i < s.BaseSize; i++ {
			t.Insert(i, rng.IntN(s.PriorityRange)+p.loadOffset)
		}
		r.opts.stats.RecordRun(ctx, s.Name, run, t.Size())

		for _, op := range p.order {
			d, found, err := r.measure(s, p, t, op, rng)
			if err != nil {
				return fmt.Errorf("suite %s run %d: %s failed: %w", s.Name, run, op, err)
			}
			if !found {
				res.Misses[op]++
			}
			res.Totals[op] += d
			r.opts.stats.RecordOperation(ctx, string(s.Impl), op, d)
		}
		res.Completed++
	}
	return nil
}

// measure performs one operation and returns how long it took.
func (r *Runner) measure(s Suite, p plan, t target, op string, rng *rand.Rand) (time.Duration, bool, error) {
	var (
		found = true
		err   error
	)

	switch op {
	case OpInsert:
		value, prio := p.insertValue, p.insertPriority(s, rng.IntN(s.PriorityRange))
		start := r.opts.now()
		t.Insert(value, prio)
		return r.opts.now().Sub(start), true, nil
	case OpRemove:
		start := r.opts.now()
		err = t.Remove()
		return r.opts.now().Sub(start), true, err
	case OpPeek:
		start := r.opts.now()
		_, err = t.Peek()
		return r.opts.now().Sub(start), true, err
	case OpSize:
		start := r.opts.now()
		_ = t.Size()
		return r.opts.now().Sub(start), true, nil
	case OpChangePriority:
		value, prio := p.changeValue(s), p.changePriority(s)
		start := r.opts.now()
		found, err = t.changePriority(value, prio)
		return r.opts.now().Sub(start), found, err
	}
	return 0, false, fmt.Errorf("unknown operation %q", op)
}

// RunAll executes the suites, concurrently when WithParallel is set, and
// returns their results in input order. The first error cancels the rest.
func (r *Runner) RunAll(ctx context.Context, suites ...Suite) ([]Result, error) {
	results := make([]Result, len(suites))

	g, ctx := errgroup.WithContext(ctx)
	if !r.opts.parallel {
		g.SetLimit(1)
	}
	for i, s := range suites {
		g.Go(func() error {
			res, err := r.Run(ctx, s)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
