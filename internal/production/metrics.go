package production

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/comalice/transientx"
)

// PrometheusObserver exports protocol activity as Prometheus metrics.
type PrometheusObserver struct {
	events     *prometheus.CounterVec
	scopeDepth prometheus.Histogram
	violations prometheus.Counter
}

// NewPrometheusObserver registers the observer's metrics with reg under namespace.
// It panics if the metrics are already registered with reg, like promauto.
func NewPrometheusObserver(reg prometheus.Registerer, namespace string) *PrometheusObserver {
	factory := promauto.With(reg)
	return &PrometheusObserver{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_events_total",
			Help:      "Mutation protocol events by kind and originating operation.",
		}, []string{"kind", "op"}),
		scopeDepth: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_scope_depth",
			Help:      "Re-entrant Modify depth reached on primary contexts.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32},
		}),
		violations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_contract_violations_total",
			Help:      "Calls rejected with ErrInvalidMutationTarget or ErrImmutableMutationAttempt.",
		}),
	}
}

func (o *PrometheusObserver) Observe(e transientx.Event) {
	o.events.WithLabelValues(e.Kind.String(), e.Op).Inc()
	switch e.Kind {
	case transientx.EventScopeEnter:
		o.scopeDepth.Observe(float64(e.Scope))
	case transientx.EventViolation:
		o.violations.Inc()
	}
}
