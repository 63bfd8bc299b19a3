package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts the work the event loop does. Counters are atomic so a
// snapshot can be taken from any goroutine.
type Metrics struct {
	// Animation frames run from the frame queue
	frameCount atomic.Uint64

	// Screen repaints
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	// Terminal events handled
	eventCount atomic.Uint64

	// Text loads and reflows
	loadCount   atomic.Uint64
	reflowCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrames records animation frames run in one tick.
func (m *Metrics) RecordFrames(n int) {
	if n > 0 {
		m.frameCount.Add(uint64(n))
	}
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records a handled terminal event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordLoad records new text being loaded.
func (m *Metrics) RecordLoad() {
	m.loadCount.Add(1)
}

// RecordReflow records a reflow after a resize.
func (m *Metrics) RecordReflow() {
	m.reflowCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renders := m.renderCount.Load()

	var avgRenderNs int64
	if renders > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renders)
	}

	return MetricsSnapshot{
		Uptime:      time.Since(m.startTime),
		FrameCount:  m.frameCount.Load(),
		RenderCount: renders,
		AvgRenderNs: avgRenderNs,
		MaxRenderNs: m.renderMaxNs.Load(),
		EventCount:  m.eventCount.Load(),
		LoadCount:   m.loadCount.Load(),
		ReflowCount: m.reflowCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime      time.Duration
	FrameCount  uint64
	RenderCount uint64
	AvgRenderNs int64
	MaxRenderNs int64
	EventCount  uint64
	LoadCount   uint64
	ReflowCount uint64
}

// AvgRender returns the mean render time.
func (s MetricsSnapshot) AvgRender() time.Duration {
	return time.Duration(s.AvgRenderNs)
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
