package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Flows collects per-flow invocation counters and latencies.
type Flows struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	sessions    prometheus.Gauge
}

func NewFlows(reg prometheus.Registerer) *Flows {
	f := &Flows{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flow_invocations_total",
			Help: "Generation flow invocations by flow and outcome.",
		}, []string{"flow", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flow_duration_seconds",
			Help:    "Generation flow latency.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 45, 90},
		}, []string{"flow"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Advisory sessions currently held in memory.",
		}),
	}
	if reg != nil {
		reg.MustRegister(f.invocations, f.duration, f.sessions)
	}
	return f
}

func (f *Flows) Observe(flow, status string, elapsed time.Duration) {
	if f == nil {
		return
	}
	f.invocations.WithLabelValues(flow, status).Inc()
	f.duration.WithLabelValues(flow).Observe(elapsed.Seconds())
}

func (f *Flows) SetSessions(n int) {
	if f == nil {
		return
	}
	f.sessions.Set(float64(n))
}

// Sessions exposes the active sessions gauge.
func (f *Flows) Sessions() prometheus.Gauge {
	return f.sessions
}
