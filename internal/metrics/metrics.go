package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session end reasons.
const (
	EndDone      = "done"
	EndTimeout   = "timeout"
	EndViolation = "violation"
	EndError     = "error"
)

var (
	registerOnce sync.Once

	sessionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missioncontrol",
			Subsystem: "sessions",
			Name:      "opened_total",
			Help:      "Sessions opened, by trigger.",
		},
		[]string{"trigger"},
	)
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "missioncontrol",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Sessions currently awaiting or processing interactions.",
		},
	)
	sessionsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missioncontrol",
			Subsystem: "sessions",
			Name:      "ended_total",
			Help:      "Sessions ended, by reason.",
		},
		[]string{"reason"},
	)
	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "missioncontrol",
			Subsystem: "mutations",
			Name:      "total",
			Help:      "Role and channel mutations attempted against the platform.",
		},
		[]string{"op", "success"},
	)
	candidateListSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "missioncontrol",
			Subsystem: "menu",
			Name:      "candidate_list_size",
			Help:      "Number of selectable options computed for a menu.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20, 25},
		},
		[]string{"category"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(sessionsOpened, sessionsActive, sessionsEnded, mutations, candidateListSize)
	})
}

func RecordSessionOpened(trigger string) {
	RegisterMetrics()
	sessionsOpened.WithLabelValues(trigger).Inc()
	sessionsActive.Inc()
}

func RecordSessionEnded(reason string) {
	RegisterMetrics()
	sessionsEnded.WithLabelValues(reason).Inc()
	sessionsActive.Dec()
}

func RecordMutation(op string, success bool) {
	RegisterMetrics()
	mutations.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

func RecordCandidateList(category string, size int) {
	RegisterMetrics()
	candidateListSize.WithLabelValues(category).Observe(float64(size))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
