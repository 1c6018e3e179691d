package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors, kept apart from the global default.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rdv",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "appointment",
			Name:      "transitions_total",
			Help:      "Appointment status changes applied.",
		},
		[]string{"from", "to"},
	)

	rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "appointment",
			Name:      "transition_rejections_total",
			Help:      "Appointment transitions refused by a rule.",
		},
		[]string{"code"},
	)

	archiveRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "archive",
			Name:      "runs_total",
			Help:      "Bulk archive executions.",
		},
		[]string{"trigger"},
	)

	archived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "archive",
			Name:      "archived_appointments_total",
			Help:      "Appointments moved to the archive by bulk runs.",
		},
		[]string{"trigger"},
	)

	contractsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rdv",
			Subsystem: "contract",
			Name:      "generated_total",
			Help:      "Contract documents generated.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		transitions,
		rejections,
		archiveRuns,
		archived,
		contractsGenerated,
		collectors.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, path string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordTransition(from, to string) {
	transitions.WithLabelValues(from, to).Inc()
}

func RecordRejection(code string) {
	rejections.WithLabelValues(code).Inc()
}

func RecordArchiveRun(trigger string, count int64) {
	archiveRuns.WithLabelValues(trigger).Inc()
	archived.WithLabelValues(trigger).Add(float64(count))
}

func RecordContractGenerated(kind string) {
	contractsGenerated.WithLabelValues(kind).Inc()
}
