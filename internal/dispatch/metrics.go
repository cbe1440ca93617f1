package dispatch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics counts how submissions reach the owning loop. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	inlineTotal    prometheus.Counter
	marshaledTotal prometheus.Counter
	failedTotal    prometheus.Counter
	queueWait      prometheus.Histogram
}

// NewMetrics creates the dispatch collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inlineTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uimutate_dispatch_inline_total",
			Help: "Invocations that ran inline because the caller already owned the loop",
		}),
		marshaledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uimutate_dispatch_marshaled_total",
			Help: "Invocations handed to the owning loop from another goroutine",
		}),
		failedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uimutate_dispatch_failed_total",
			Help: "Invocations rejected because the owning loop had stopped",
		}),
		queueWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "uimutate_dispatch_queue_wait_seconds",
			Help:    "Time a marshaled invocation waited before the loop picked it up",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.inlineTotal, m.marshaledTotal, m.failedTotal, m.queueWait)
	}
	return m
}

// RecordInline counts an invocation that ran on the caller.
func (m *Metrics) RecordInline() {
	if m != nil {
		m.inlineTotal.Inc()
	}
}

// RecordMarshaled counts an invocation handed to the owning loop.
func (m *Metrics) RecordMarshaled() {
	if m != nil {
		m.marshaledTotal.Inc()
	}
}

// RecordFailed counts an invocation rejected by a stopped owner.
func (m *Metrics) RecordFailed() {
	if m != nil {
		m.failedTotal.Inc()
	}
}

// ObserveWait records how long t waited before it was picked up.
func (m *Metrics) ObserveWait(t *Task) {
	if m != nil {
		m.queueWait.Observe(time.Since(t.Enqueued()).Seconds())
	}
}

// Inline, Marshaled and Failed expose the counters to callers that report
// or assert on them.
func (m *Metrics) Inline() prometheus.Counter    { return m.inlineTotal }
func (m *Metrics) Marshaled() prometheus.Counter { return m.marshaledTotal }
func (m *Metrics) Failed() prometheus.Counter    { return m.failedTotal }

// Counts is a point-in-time read of the dispatch counters.
type Counts struct {
	Inline    float64
	Marshaled float64
	Failed    float64
}

func (m *Metrics) Counts() Counts {
	if m == nil {
		return Counts{}
	}
	return Counts{
		Inline:    counterValue(m.inlineTotal),
		Marshaled: counterValue(m.marshaledTotal),
		Failed:    counterValue(m.failedTotal),
	}
}

func counterValue(c prometheus.Counter) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}
