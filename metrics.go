package vrml

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the scene runtime's prometheus collectors. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	EventsDelivered  prometheus.Counter
	EventsDropped    *prometheus.CounterVec
	BoundsRecomputed prometheus.Counter
	NodesLive        prometheus.Gauge
	Routes           prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		EventsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml",
			Subsystem: "events",
			Name:      "delivered_total",
			Help:      "Total number of events delivered along routes",
		}),
		EventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vrml",
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Total number of routed events dropped at the dispatch boundary",
		}, []string{"reason"}),
		BoundsRecomputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml",
			Subsystem: "bounds",
			Name:      "recomputed_total",
			Help:      "Total number of lazy bounding volume recomputations",
		}),
		NodesLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrml",
			Subsystem: "nodes",
			Name:      "live",
			Help:      "Number of nodes initialized in a scene and not yet shut down",
		}),
		Routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrml",
			Subsystem: "routes",
			Name:      "active",
			Help:      "Number of routes owned by scenes",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.EventsDelivered, m.EventsDropped, m.BoundsRecomputed, m.NodesLive, m.Routes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) delivered() {
	if m != nil {
		m.EventsDelivered.Inc()
	}
}

func (m *Metrics) dropped(reason string) {
	if m != nil {
		m.EventsDropped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) boundsRecomputed() {
	if m != nil {
		m.BoundsRecomputed.Inc()
	}
}

func (m *Metrics) nodeLive(delta float64) {
	if m != nil {
		m.NodesLive.Add(delta)
	}
}

func (m *Metrics) routes(delta float64) {
	if m != nil {
		m.Routes.Add(delta)
	}
}
