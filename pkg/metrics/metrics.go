// Package metrics counts simulation work in a private Prometheus registry
// that can be dumped in the text exposition format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dnpsim/pkg/verify"
)

const namespace = "dnpsim"

type Metrics struct {
	registry *prometheus.Registry

	simulations        *prometheus.CounterVec
	permutations       prometheus.Counter
	operationsApplied  prometheus.Counter
	contractViolations prometheus.Counter
	operationsPerSim   prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Simulations checked, by outcome.",
		}, []string{"outcome"}),
		permutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "permutations_total",
			Help:      "Operation orderings replayed.",
		}),
		operationsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_applied_total",
			Help:      "Operations applied to an entry across all replays.",
		}),
		contractViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Simulations aborted by a resolver contract violation.",
		}),
		operationsPerSim: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operations_per_simulation",
			Help:      "Size of the checked operation sets.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}

	m.registry.MustRegister(
		m.simulations,
		m.permutations,
		m.operationsApplied,
		m.contractViolations,
		m.operationsPerSim,
	)
	for _, o := range []verify.Outcome{verify.Converged, verify.PresenceConverged, verify.Diverged} {
		m.simulations.WithLabelValues(o.String())
	}
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReport records one finished simulation.
func (m *Metrics) ObserveReport(r *verify.Report) {
	m.simulations.WithLabelValues(r.Outcome.String()).Inc()
	m.permutations.Add(float64(r.Permutations))
	m.operationsApplied.Add(float64(r.Permutations * len(r.Operations)))
	m.operationsPerSim.Observe(float64(len(r.Operations)))
}

func (m *Metrics) ObserveContractViolation() {
	m.contractViolations.Inc()
}

// WriteTextfile dumps the registry for a node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
