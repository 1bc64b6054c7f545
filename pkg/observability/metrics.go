package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	GesturesStarted   *prometheus.CounterVec
	GesturesCompleted *prometheus.CounterVec
	EdgesCreated      prometheus.Counter
	NodesDeleted      prometheus.Counter
	ZoomOperations    prometheus.Counter
	ActiveSessions    prometheus.Gauge
	MessagesReceived  *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		GesturesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvas_gestures_started_total",
			Help: "Pointer gestures started, by gesture kind.",
		}, []string{"kind"}),

		GesturesCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvas_gestures_completed_total",
			Help: "Pointer gestures completed or aborted, by kind and outcome.",
		}, []string{"kind", "outcome"}),

		EdgesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "canvas_edges_created_total",
			Help: "Edges created through connection gestures or the API.",
		}),

		NodesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "canvas_nodes_deleted_total",
			Help: "Nodes deleted through keyboard signals or the API.",
		}),

		ZoomOperations: factory.NewCounter(prometheus.CounterOpts{
			Name: "canvas_zoom_operations_total",
			Help: "Wheel zoom operations applied to the viewport.",
		}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "canvas_active_sessions",
			Help: "Currently connected canvas sessions.",
		}),

		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "canvas_messages_received_total",
			Help: "Input messages received from sessions, by message type.",
		}, []string{"type"}),
	}
}

// Handler returns the HTTP handler serving this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
