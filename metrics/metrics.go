// Package metrics instruments the reactive dependency graph with
// Prometheus collectors, the same promauto/prometheus.CounterVec/
// HistogramVec shapes the teacher's HTTP middleware used, pointed instead
// at reactive.Debug's track/trigger events, plus effect runs and live
// effect counts that a host reports explicitly.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reactive-go/reactive/reactive"
)

// Config configures the Prometheus instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect run duration.
	Buckets []float64

	// Registry is the Prometheus registry to register collectors on.
	Registry prometheus.Registerer
}

// Option configures the instrumentation.
type Option func(*Config)

func WithNamespace(namespace string) Option { return func(c *Config) { c.Namespace = namespace } }
func WithSubsystem(subsystem string) Option { return func(c *Config) { c.Subsystem = subsystem } }
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}
func WithBuckets(buckets []float64) Option { return func(c *Config) { c.Buckets = buckets } }
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type collectors struct {
	tracksTotal    *prometheus.CounterVec
	triggersTotal  *prometheus.CounterVec
	effectRuns     prometheus.Counter
	effectDuration prometheus.Histogram
	liveEffects    prometheus.Gauge
}

var (
	global     *collectors
	globalOnce sync.Once
	globalMu   sync.Mutex
)

func build(cfg Config) *collectors {
	factory := promauto.With(cfg.Registry)
	return &collectors{
		tracksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "tracks_total",
			Help:        "Total number of dependencies established via track()",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),
		triggersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of dependency invalidations via trigger()",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect executions",
			ConstLabels: cfg.ConstLabels,
		}),
		effectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_run_duration_seconds",
			Help:        "Wall-clock duration of a single effect run",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),
		liveEffects: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "live_effects",
			Help:        "Effects currently subscribed to at least one dependency",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Install subscribes to reactive.Debug and registers the collectors on
// opts' registry. Calling Install more than once is a no-op: the
// collectors, like the teacher's globalMetrics, are a process-wide
// singleton created on first use.
func Install(opts ...Option) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return
	}
	global = build(cfg)

	reactive.Debug.Subscribe(func(ev reactive.DebugEvent) {
		if ev.Type == reactive.OpGet {
			global.tracksTotal.WithLabelValues(ev.Type.String()).Inc()
			return
		}
		global.triggersTotal.WithLabelValues(ev.Type.String()).Inc()
	})
}

// SetLiveEffects reports the current count of subscribed effects. The
// dependency graph itself doesn't track a global live count, so a host
// that wants this gauge populated calls it after creating/stopping effects.
func SetLiveEffects(n int) {
	if global != nil {
		global.liveEffects.Set(float64(n))
	}
}

// RecordEffectRun records one effect execution's wall-clock duration. A
// host wraps an Effect's creation with this the way the teacher's
// RecordPatches wraps a manual call site, since the dependency graph itself
// has no notion of "duration" to publish on the debug bus.
func RecordEffectRun(duration time.Duration) {
	if global == nil {
		return
	}
	global.effectRuns.Inc()
	global.effectDuration.Observe(duration.Seconds())
}
