// Package metrics provides Prometheus instrumentation for the Sparkmatch
// backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SwipesTotal counts recorded swipes by action: LIKE, PASS, SUPER_LIKE.
	SwipesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkmatch_swipes_total",
		Help: "Total number of swipes recorded",
	}, []string{"action"})

	// MatchesTotal counts mutual-like matches created.
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparkmatch_matches_total",
		Help: "Total number of matches created",
	})

	// UndosTotal counts successful swipe reversals.
	UndosTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparkmatch_undos_total",
		Help: "Total number of swipes undone",
	})

	// OTPRequestsTotal counts verification codes issued.
	OTPRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sparkmatch_otp_requests_total",
		Help: "Total number of OTP codes issued",
	})

	// DiscoveryDuration records how long building a discovery feed takes.
	DiscoveryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sparkmatch_discovery_build_seconds",
		Help:    "Time spent building a discovery feed",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
)

func init() {
	prometheus.MustRegister(
		SwipesTotal,
		MatchesTotal,
		UndosTotal,
		OTPRequestsTotal,
		DiscoveryDuration,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
