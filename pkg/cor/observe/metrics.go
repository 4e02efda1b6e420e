package observe

import (
	"context"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by chain events.
type Metrics struct {
	outcomesTotal *prometheus.CounterVec
	forwardsTotal *prometheus.CounterVec
	rejectedTotal prometheus.Counter
	hops          *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors under namespace and registers them on a
// private registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		outcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Submissions by outcome status and resolving handler",
			},
			[]string{"status", "handler"},
		),
		forwardsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forwards_total",
				Help:      "Requests passed from one handler to the next",
			},
			[]string{"from", "to"},
		),
		rejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalid_requests_total",
				Help:      "Requests rejected before entering the chain",
			},
		),
		hops: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "chain_hops",
				Help:      "Handlers evaluated per submission",
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"status"},
		),
		registry: registry,
	}

	registry.MustRegister(m.outcomesTotal, m.forwardsTotal, m.rejectedTotal, m.hops)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Observe(_ context.Context, e cor.Event) {
	switch e.Kind {
	case cor.EventForwarded:
		m.forwardsTotal.WithLabelValues(e.Handler, e.Next).Inc()
	case cor.EventResolved:
		m.outcomesTotal.WithLabelValues(cor.StatusResolved.String(), e.Handler).Inc()
		m.hops.WithLabelValues(cor.StatusResolved.String()).Observe(float64(e.Hop))
	case cor.EventExhausted:
		m.outcomesTotal.WithLabelValues(cor.StatusUnresolved.String(), "").Inc()
		m.hops.WithLabelValues(cor.StatusUnresolved.String()).Observe(float64(e.Hop))
	case cor.EventRejected:
		m.rejectedTotal.Inc()
	}
}
