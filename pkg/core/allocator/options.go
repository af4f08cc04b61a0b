package allocator

import (
	"runtime"

	"go.uber.org/zap"
)

type options struct {
	workers  int
	logger   *zap.Logger
	reporter Reporter
}

// Option configures the matcher and the allocator
type Option func(*options)

// WithWorkers bounds the number of tasks scored concurrently. Values below 1
// fall back to GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(o *options) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// WithLogger sets the logger used for debug output and the default reporter
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReporter replaces the default log reporter for unallocated tasks
func WithReporter(reporter Reporter) Option {
	return func(o *options) {
		if reporter != nil {
			o.reporter = reporter
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.reporter == nil {
		o.reporter = NewLogReporter(o.logger)
	}
	return o
}
