// Package metrics holds the Prometheus collectors updated by the event planner services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the application collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	EventsCreated     prometheus.Counter
	RSVPs             *prometheus.CounterVec
	Invitations       *prometheus.CounterVec
	StoreSaveFailures prometheus.Counter
	StoreLoadResets   prometheus.Counter
	StoredEvents      prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in binaries and a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "eventplanner_events_created_total",
			Help: "Number of events created",
		}),
		RSVPs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventplanner_rsvps_total",
			Help: "Number of RSVP changes by resulting status",
		}, []string{"status"}),
		Invitations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eventplanner_invitations_total",
			Help: "Number of invitation attempts by result",
		}, []string{"result"}),
		StoreSaveFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "eventplanner_store_save_failures_total",
			Help: "Number of failed writes of the event list",
		}),
		StoreLoadResets: f.NewCounter(prometheus.CounterOpts{
			Name: "eventplanner_store_load_resets_total",
			Help: "Number of loads that discarded unreadable data",
		}),
		StoredEvents: f.NewGauge(prometheus.GaugeOpts{
			Name: "eventplanner_stored_events",
			Help: "Number of events currently held by the store",
		}),
	}
}

func (m *Metrics) EventCreated() {
	if m == nil {
		return
	}
	m.EventsCreated.Inc()
}

func (m *Metrics) RSVP(status string) {
	if m == nil {
		return
	}
	m.RSVPs.WithLabelValues(status).Inc()
}

func (m *Metrics) Invitation(result string) {
	if m == nil {
		return
	}
	m.Invitations.WithLabelValues(result).Inc()
}

func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.StoreSaveFailures.Inc()
}

func (m *Metrics) LoadReset() {
	if m == nil {
		return
	}
	m.StoreLoadResets.Inc()
}

func (m *Metrics) SetStoredEvents(n int) {
	if m == nil {
		return
	}
	m.StoredEvents.Set(float64(n))
}
