package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ClassifierCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "modgate", Name: "classifier_calls_total", Help: "Remote classifier calls by operation and outcome."},
		[]string{"op", "outcome"},
	)
	Verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "modgate", Name: "verdicts_total", Help: "Classification verdicts by result (allow/deny)."},
		[]string{"verdict"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "modgate", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "modgate", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ClassifierCalls)
	reg.MustRegister(Verdicts)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
