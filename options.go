package fuzzyc

import (
	"log/slog"

	"github.com/hupe1980/fuzzyc/distance"
	"github.com/hupe1980/fuzzyc/resource"
)

// MembershipMode selects the FIT-step membership formula.
type MembershipMode int

const (
	// MembershipRaw sets membership[j] = 1 / (w_j / Σ_k w_k) with w = d^(2/(m-1)),
	// and 0 when the point coincides with centroid j. Values are neither
	// normalized nor bounded to [0, 1].
	MembershipRaw MembershipMode = iota

	// MembershipNormalized uses the textbook formula u_j = 1 / Σ_k (d_j/d_k)^(2/(m-1)).
	// A point that coincides with one or more centroids splits a membership of
	// 1 equally among them.
	MembershipNormalized
)

func (m MembershipMode) String() string {
	switch m {
	case MembershipRaw:
		return "raw"
	case MembershipNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

type options struct {
	mode             MembershipMode
	metric           distance.Metric
	workers          int
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithMembershipMode selects the membership formula. Defaults to MembershipRaw.
func WithMembershipMode(mode MembershipMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithMetric selects the point-to-centroid distance. Defaults to
// distance.MetricEuclidean.
func WithMetric(metric distance.Metric) Option {
	return func(o *options) {
		o.metric = metric
	}
}

// WithWorkers sets how many goroutines each phase may fan out to.
// Values <= 1 run both phases on the calling goroutine.
//
// FIT always completes for every point before MOVE starts, regardless of the
// worker count, and results are identical to the serial path.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController draws worker slots from a controller shared with
// other engines. The engine never uses more slots than WithWorkers allows.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring iterations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fuzzyc.BasicMetricsCollector{}
//	eng := fuzzyc.NewEngine(fuzzyc.WithMetricsCollector(metrics))
//	// ... iterate ...
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Avg latency: %dns\n", stats.IterationCount, stats.IterationAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
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

func applyOptions(optFns []Option) options {
	o := options{
		mode:             MembershipRaw,
		metric:           distance.MetricEuclidean,
		workers:          1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
