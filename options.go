package chillvec

import (
	"log/slog"

	"github.com/hupe1980/chillvec/alloc"
)

type options struct {
	allocator alloc.Allocator
	logger    *Logger
	metrics   MetricsCollector
}

// defaultOptions backs every container built without options, including
// zero values. Abort and fallback messages go to stderr; debug output is off.
var defaultOptions = &options{
	logger:  NewTextLogger(slog.LevelWarn),
	metrics: NoopMetricsCollector{},
}

// Option configures a container constructor.
//
// Containers built from the same option list share one configuration, and
// composite containers (StrVec, CompactInts, CursorVec) pass theirs down to
// every Vec they own.
type Option func(*options)

// WithAllocator places the backing region under a manual allocator, such as
// alloc.NewMmap() for off-heap storage.
//
// Only element types without Go pointers can live in allocator memory. For
// any other type the option is ignored, the elements stay on the Go heap, and
// a warning is logged.
//
// Containers using an allocator must be released with Free.
//
// Example:
//
//	offheap := alloc.NewMmap()
//	ints := chillvec.NewVec[uint64](chillvec.WithAllocator(offheap))
//	defer ints.Free()
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithLogger configures structured logging for container events
// (aborts, width upgrades, heap fallbacks). Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := chillvec.NewJSONLogger(slog.LevelDebug)
//	words := chillvec.NewStrVec(chillvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector enables metrics collection for container events.
// Pass nil to disable.
//
// Example:
//
//	metrics := &chillvec.BasicMetricsCollector{}
//	words := chillvec.NewStrVec(chillvec.WithMetricsCollector(metrics))
//	// ... use words ...
//	stats := metrics.GetStats()
//	fmt.Printf("Resizes: %d, Upgrades: %d\n", stats.ResizeCount, stats.UpgradeCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) *options {
	if len(optFns) == 0 {
		return defaultOptions
	}
	o := *defaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return &o
}
