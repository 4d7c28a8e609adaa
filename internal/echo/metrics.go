package echo

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "sockets_echo"

// Metrics counts connections and echoed frames.
type Metrics struct {
	connectionsTotal  prometheus.Counter
	connectionsActive prometheus.Gauge
	messagesEchoed    *prometheus.CounterVec
	bytesEchoed       prometheus.Counter
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "connections_total",
			Help:      "Total number of accepted websocket connections",
		}),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connections_active",
			Help:      "Number of currently open websocket connections",
		}),
		messagesEchoed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_echoed_total",
			Help:      "Total number of echoed messages",
		}, []string{"type"}),
		bytesEchoed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_echoed_total",
			Help:      "Total payload bytes echoed back to clients",
		}),
	}
	registry.MustRegister(
		m.connectionsTotal,
		m.connectionsActive,
		m.messagesEchoed,
		m.bytesEchoed,
	)
	return m
}
