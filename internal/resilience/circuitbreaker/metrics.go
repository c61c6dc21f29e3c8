package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	// stateGauge is 0 closed, 1 half-open, 2 open (gobreaker.State values).
	stateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

func recordState(name string, state gobreaker.State) {
	stateGauge.WithLabelValues(name).Set(float64(state))
}

func recordTransition(name string, from, to gobreaker.State) {
	transitionsTotal.WithLabelValues(name, from.String(), to.String()).Inc()
	recordState(name, to)
}
