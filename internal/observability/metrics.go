package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's prometheus collectors so domain services can
// record without touching the registry directly.
type Metrics struct {
	Registry *prometheus.Registry

	SessionsOpened       prometheus.Counter
	SessionsClosed       *prometheus.CounterVec
	NotificationsEmitted *prometheus.CounterVec
	Occupancy            *prometheus.GaugeVec
	CapacityPercent      *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parking_sessions_opened_total",
			Help: "Parking sessions opened at the entry gate.",
		}),
		SessionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_sessions_closed_total",
			Help: "Parking sessions closed, by terminal status.",
		}, []string{"status"}),
		NotificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_notifications_emitted_total",
			Help: "Notification records created or refreshed, by type.",
		}, []string{"type"}),
		Occupancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parking_occupancy",
			Help: "Open sessions per capacity class.",
		}, []string{"class"}),
		CapacityPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parking_capacity_percent",
			Help: "Percent of configured capacity in use per class.",
		}, []string{"class"}),
	}

	m.Registry.MustRegister(
		m.SessionsOpened,
		m.SessionsClosed,
		m.NotificationsEmitted,
		m.Occupancy,
		m.CapacityPercent,
	)
	return m
}
