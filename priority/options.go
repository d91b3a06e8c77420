package priority

import "go.uber.org/zap"

// DefaultCapacity is the number of entries a Heap can hold before its first growth.
const DefaultCapacity = 16

// options defines the configuration of a Heap.
type options struct {
	capacity int         // Initial storage capacity
	logger   *zap.Logger // Receives storage growth events
}

// Option is a function that configures a Heap.
type Option func(*options)

// WithCapacity sets the initial storage capacity. Values below one are raised to one.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger used to report storage growth.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		capacity: DefaultCapacity,
		logger:   zap.NewNop(),
	}
}
