package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration mede a latência dos pedidos HTTP por rota.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lojasocial_http_request_duration_seconds",
			Help: "Duração dos pedidos HTTP em segundos",
			Buckets: []float64{
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"method", "route", "status"},
	)

	DeliveriesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lojasocial_deliveries_saved_total",
		Help: "Entregas gravadas",
	})

	// CapacityRejections conta as operações recusadas por falta de stock ou limite atingido.
	CapacityRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lojasocial_capacity_rejections_total",
		Help: "Operações de entrega recusadas por capacidade",
	}, []string{"kind"})

	ExpiredLotsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lojasocial_expired_lots_removed_total",
		Help: "Lotes expirados apagados",
	})
)

// RecordHTTPRequest regista a duração de um pedido HTTP.
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration)
}

// Recorder liga os eventos dos serviços aos coletores globais.
type Recorder struct{}

func (Recorder) DeliverySaved() { DeliveriesSaved.Inc() }

func (Recorder) CapacityRejected(kind string) { CapacityRejections.WithLabelValues(kind).Inc() }

func (Recorder) ExpiredLotsRemoved(n int) {
	if n > 0 {
		ExpiredLotsRemoved.Add(float64(n))
	}
}
