package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Depth     int // Last completed iteration
	Nodes     int64
	Cutoffs   int64
	TableHits int64
	Evictions int64
	TimedOut  bool
}

type MetricsCollector interface {
	Start()
	AddNode()
	AddCutoff()
	AddTableHit()
	AddEvictions(n int64)
	CompleteDepth(depth int)
	TimedOut()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	depth     atomic.Int64
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	tableHits atomic.Int64
	evictions atomic.Int64
	timedOut  atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.depth.Store(0)
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.tableHits.Store(0)
	m.evictions.Store(0)
	m.timedOut.Store(false)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *metricsCollector) AddEvictions(n int64) {
	m.evictions.Add(n)
}

func (m *metricsCollector) CompleteDepth(depth int) {
	m.depth.Store(int64(depth))
}

func (m *metricsCollector) TimedOut() {
	m.timedOut.Store(true)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Depth:     int(m.depth.Load()),
		Nodes:     m.nodes.Load(),
		Cutoffs:   m.cutoffs.Load(),
		TableHits: m.tableHits.Load(),
		Evictions: m.evictions.Load(),
		TimedOut:  m.timedOut.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) AddCutoff()              {}
func (m *noMetricsCollector) AddTableHit()            {}
func (m *noMetricsCollector) AddEvictions(n int64)    {}
func (m *noMetricsCollector) CompleteDepth(depth int) {}
func (m *noMetricsCollector) TimedOut()               {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
