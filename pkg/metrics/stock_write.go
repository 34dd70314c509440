package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StockWriteMetrics métricas de escrituras de stock (creación y sincronización de posiciones).
// Un valor sin registrar (reg nil) es un no-op.
type StockWriteMetrics struct {
	duration  *prometheus.HistogramVec
	failures  *prometheus.CounterVec
	positions *prometheus.CounterVec
}

// NewStockWriteMetrics registra las métricas en reg. Con reg nil devuelve un recolector no-op.
func NewStockWriteMetrics(reg prometheus.Registerer) *StockWriteMetrics {
	if reg == nil {
		return &StockWriteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_write_duration_seconds",
		Help:    "Duración de escrituras de stock en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_write_failures_total",
		Help: "Escrituras de stock revertidas.",
	}, []string{"op"})
	positions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_positions_total",
		Help: "Posiciones afectadas por escrituras de stock, por resultado.",
	}, []string{"op", "result"})
	reg.MustRegister(duration, failures, positions)
	return &StockWriteMetrics{
		duration:  duration,
		failures:  failures,
		positions: positions,
	}
}

// ObserveWrite registra la duración de una escritura y cuenta el fallo si err != nil.
func (m *StockWriteMetrics) ObserveWrite(op string, duration time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	op = normalizeLabel(op)
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.failures.WithLabelValues(op).Inc()
	}
}

// AddPositions suma posiciones creadas, actualizadas y borradas.
func (m *StockWriteMetrics) AddPositions(op string, created, updated, deleted int) {
	if m == nil || m.positions == nil {
		return
	}
	op = normalizeLabel(op)
	m.positions.WithLabelValues(op, "created").Add(float64(created))
	m.positions.WithLabelValues(op, "updated").Add(float64(updated))
	m.positions.WithLabelValues(op, "deleted").Add(float64(deleted))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
