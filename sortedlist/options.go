package sortedlist

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option is a function that configures a List.
type Option func(*options)

// WithLogger sets the logger that receives empty-dequeue warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
	}
}
