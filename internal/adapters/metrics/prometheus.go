package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus records component activity. It implements port.Recorder.
type Prometheus struct {
	evaluations  *prometheus.CounterVec
	ready        prometheus.Counter
	sourcesBuilt prometheus.Counter
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imgeng_evaluations_total",
				Help: "Evaluation passes run by image components, by trigger.",
			},
			[]string{"trigger"},
		),
		ready: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "imgeng_ready_total",
				Help: "Image components that became ready to load.",
			},
		),
		sourcesBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "imgeng_sources_built_total",
				Help: "Image URLs built.",
			},
		),
	}
}

func (p *Prometheus) Evaluated(trigger string) {
	p.evaluations.WithLabelValues(trigger).Inc()
}

func (p *Prometheus) Ready() {
	p.ready.Inc()
}

func (p *Prometheus) SourceBuilt() {
	p.sourcesBuilt.Inc()
}
