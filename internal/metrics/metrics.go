// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the wizard's collectors. Register once per process.
type Metrics struct {
	SessionsCreated *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
	SubmitDuration  prometheus.Histogram
	CommandsHandled *prometheus.CounterVec
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotiza_sessions_created_total",
				Help: "Quote wizard sessions created",
			},
			[]string{"brand"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotiza_submissions_total",
				Help: "Quote submissions by outcome",
			},
			[]string{"brand", "outcome"},
		),
		SubmitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "cotiza_submit_duration_seconds",
				Help: "Duration of relay submissions",
			},
		),
		CommandsHandled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotiza_commands_total",
				Help: "Wizard commands handled by type",
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(m.SessionsCreated, m.Submissions, m.SubmitDuration, m.CommandsHandled)
	return m
}
