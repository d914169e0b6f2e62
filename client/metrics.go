package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rosette_client",
			Name:      "calls_total",
			Help:      "Finished calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	callDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rosette_client",
			Name:      "call_duration_seconds",
			Help:      "Latency of calls that reached the network.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	asyncCallsEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rosette_client",
			Name:      "async_calls_enqueued_total",
			Help:      "Calls accepted into the worker pool.",
		},
		[]string{"operation"},
	)
)

func observeCall(op Operation, start time.Time, err error) {
	outcome := outcomeOf(err)
	callsTotal.WithLabelValues(string(op), outcome).Inc()
	if outcome != "validation" {
		callDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsValidation(err):
		return "validation"
	case IsAPI(err):
		return "api_error"
	case IsTransport(err):
		return "transport_error"
	case errors.Is(err, ErrUnknownOperation):
		return "unknown_operation"
	default:
		return "error"
	}
}
