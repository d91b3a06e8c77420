package monitoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/konradgierczak7/SD-projekt-2/core/metrics"
)

// Stats receives measurement events from the harness.
type Stats interface {
	RecordOperation(ctx context.Context, impl, op string, d time.Duration)
	RecordRun(ctx context.Context, suite string, run int, loaded int)
	RecordSuiteError(ctx context.Context, suite string, err error)
}

// stats forwards events to a metrics registry and a logger.
type stats struct {
	registry *metrics.Registry
	logger   *zap.Logger
}

// NewStats returns Stats that feed registry and log suite progress to logger.
func NewStats(registry *metrics.Registry, logger *zap.Logger) Stats {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &stats{
		registry: registry,
		logger:   logger,
	}
}

func (s *stats) RecordOperation(_ context.Context, impl, op string, d time.Duration) {
	s.registry.ObserveOperation(impl, op, d)
}

func (s *stats) RecordRun(_ context.Context, suite string, run int, loaded int) {
	s.logger.Debug("run loaded",
		zap.String("suite", suite),
		zap.Int("run", run),
		zap.Int("loaded", loaded),
	)
}

func (s *stats) RecordSuiteError(_ context.Context, suite string, err error) {
	s.registry.RecordError(suite)
	s.logger.Error("suite failed", zap.String("suite", suite), zap.Error(err))
}

// nopStats discards every event.
type nopStats struct{}

// NopStats returns a Stats that records nothing.
func NopStats() Stats { return nopStats{} }

func (nopStats) RecordOperation(context.Context, string, string, time.Duration) {}
func (nopStats) RecordRun(context.Context, string, int, int) {}
func (nopStats) RecordSuiteError(context.Context, string, error) {}
