// Package metrics exposes Prometheus counters for play sessions served over
// SSH, plus the HTTP router that serves them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// Metrics holds Prometheus counters and gauges for the game server.
// A nil *Metrics is valid and records nothing, so local play needs no
// metrics wiring.
type Metrics struct {
	registry         *prometheus.Registry
	sessionsStarted  prometheus.Counter
	sessionsFinished prometheus.Counter
	judgments        *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	songsRegistered  prometheus.Gauge
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
}

// New creates and registers Prometheus metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	sessionsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bithero_sessions_started_total",
		Help: "Total number of play sessions started",
	})
	sessionsFinished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bithero_sessions_finished_total",
		Help: "Total number of play sessions that reached the end of their chart",
	})
	judgments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bithero_judgments_total",
		Help: "Total number of judged notes by outcome",
	}, []string{"kind"})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bithero_active_sessions",
		Help: "Number of play sessions in progress",
	})
	songsRegistered := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bithero_songs_registered",
		Help: "Number of playable songs",
	})
	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bithero_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bithero_http_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		sessionsStarted,
		sessionsFinished,
		judgments,
		activeSessions,
		songsRegistered,
		requestsTotal,
		errorsTotal,
	)

	// Export every kind from the first scrape
	for _, kind := range []core.Judgment{core.JudgmentPerfect, core.JudgmentGreat, core.JudgmentMiss} {
		judgments.WithLabelValues(judgmentLabel(kind))
	}

	return &Metrics{
		registry:         registry,
		sessionsStarted:  sessionsStarted,
		sessionsFinished: sessionsFinished,
		judgments:        judgments,
		activeSessions:   activeSessions,
		songsRegistered:  songsRegistered,
		requestsTotal:    requestsTotal,
		errorsTotal:      errorsTotal,
	}
}

func judgmentLabel(kind core.Judgment) string {
	switch kind {
	case core.JudgmentPerfect:
		return "perfect"
	case core.JudgmentGreat:
		return "great"
	default:
		return "miss"
	}
}

// SessionStarted counts a new session and marks it active.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
	m.activeSessions.Inc()
}

// SessionEnded marks a session inactive. finished reports whether it ran
// to the end of its chart rather than being aborted.
func (m *Metrics) SessionEnded(finished bool) {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
	if finished {
		m.sessionsFinished.Inc()
	}
}

// ObserveJudgment counts one judged note. JudgmentNone is ignored.
func (m *Metrics) ObserveJudgment(kind core.Judgment) {
	if m == nil || kind == core.JudgmentNone {
		return
	}
	m.judgments.WithLabelValues(judgmentLabel(kind)).Inc()
}

// Feedback adapts the judgment counter to the session feedback hook.
func (m *Metrics) Feedback() core.Feedback {
	return core.FeedbackFunc(m.ObserveJudgment)
}

// SetSongsRegistered sets the playable songs gauge.
func (m *Metrics) SetSongsRegistered(n int) {
	if m == nil {
		return
	}
	m.songsRegistered.Set(float64(n))
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	if m == nil {
		return
	}
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
