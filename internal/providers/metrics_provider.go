package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"addrbook/internal/structures"
)

type MetricsProviderInterface interface {
	IncCommandsTotal(command, result string)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(operation string, duration time.Duration)
	SetContactsTotal(count int)
	Flush() error
}

// MetricsProvider keeps its own registry and, being a short-lived CLI,
// exports it as a node_exporter textfile on Flush instead of serving it.
type MetricsProvider struct {
	registry            *prometheus.Registry
	textFile            string
	commandsTotal       *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	contactsTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncCommandsTotal(command, result string) {
	m.commandsTotal.WithLabelValues(command, result).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(operation string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetContactsTotal(count int) {
	m.contactsTotal.Set(float64(count))
}

func (m *MetricsProvider) Flush() error {
	if m.textFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.textFile, m.registry)
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,
		textFile: conf.Metrics.TextFile,

		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "addrbook_commands_total",
			Help: "Total number of processed commands",
		}, []string{"command", "result"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "addrbook_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "addrbook_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "addrbook_persistence_duration_seconds",
			Help:    "Duration of snapshot load and save operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		contactsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "addrbook_contacts_total",
			Help: "Number of contacts in the directory",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncCommandsTotal(_, _ string)                         {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetContactsTotal(_ int)                               {}
func (n *noopMetrics) Flush() error                                         { return nil }
