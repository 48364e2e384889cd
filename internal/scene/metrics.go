package scene

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts render activity. Each viewer owns its own registry so
// several viewers (and tests) never collide on registration.
type Metrics struct {
	Syncs        prometheus.Counter
	Drawables    prometheus.Gauge
	LoadFailures prometheus.Counter
}

// NewMetrics registers the render metrics with reg. A nil reg yields
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Syncs: factory.NewCounter(prometheus.CounterOpts{
			Name: "partview_render_syncs_total",
			Help: "Total number of full render list rebuilds",
		}),
		Drawables: factory.NewGauge(prometheus.GaugeOpts{
			Name: "partview_scene_drawables",
			Help: "Drawables registered by the last render sync",
		}),
		LoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "partview_load_failures_total",
			Help: "Total number of geometry files that failed to load",
		}),
	}
}

// RecordSync records one sync that registered n drawables.
func (m *Metrics) RecordSync(n int) {
	m.Syncs.Inc()
	m.Drawables.Set(float64(n))
}
