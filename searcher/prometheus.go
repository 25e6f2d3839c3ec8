package searcher

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "ropes"

const searchSubsystem = "search"

// PrometheusMetrics aggregates the metrics of every search that reports to
// it. Build one per registry and share it between engines.
type PrometheusMetrics struct {
	SearchesTotal   *prometheus.CounterVec // Labels: timed_out
	NodesTotal      prometheus.Counter
	CutoffsTotal    prometheus.Counter
	TableHitsTotal  prometheus.Counter
	EvictionsTotal  prometheus.Counter
	DepthReached    prometheus.Histogram
	DurationSeconds prometheus.Histogram
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "searches_total",
			Help:      "Completed move searches by whether the time limit cut them short",
		}, []string{"timed_out"}),
		NodesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "nodes_total",
			Help:      "Search nodes expanded",
		}),
		CutoffsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "cutoffs_total",
			Help:      "Alpha-beta cutoffs",
		}),
		TableHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "table_hits_total",
			Help:      "Transposition table probes that found an entry",
		}),
		EvictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "table_evictions_total",
			Help:      "Transposition table entries evicted as least recently used",
		}),
		DepthReached: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "depth_reached",
			Help:      "Last fully completed iterative deepening depth",
			Buckets:   prometheus.LinearBuckets(0, 1, 13),
		}),
		DurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: searchSubsystem,
			Name:      "duration_seconds",
			Help:      "Wall-clock time of a move search",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
}

// Collector returns a collector for one engine that reports each finished
// search to m.
func (m *PrometheusMetrics) Collector() MetricsCollector {
	return &prometheusCollector{metricsCollector: &metricsCollector{}, sink: m}
}

func (m *PrometheusMetrics) observe(sm SearchMetrics) {
	m.SearchesTotal.WithLabelValues(strconv.FormatBool(sm.TimedOut)).Inc()
	m.NodesTotal.Add(float64(sm.Nodes))
	m.CutoffsTotal.Add(float64(sm.Cutoffs))
	m.TableHitsTotal.Add(float64(sm.TableHits))
	m.EvictionsTotal.Add(float64(sm.Evictions))
	m.DepthReached.Observe(float64(sm.Depth))
	m.DurationSeconds.Observe(sm.Duration.Seconds())
}

type prometheusCollector struct {
	*metricsCollector
	sink *PrometheusMetrics
}

func (c *prometheusCollector) Complete() SearchMetrics {
	sm := c.metricsCollector.Complete()
	c.sink.observe(sm)
	return sm
}
