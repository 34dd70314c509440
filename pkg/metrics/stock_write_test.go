package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockWriteMetrics_ExportaContadoresEHistograma(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStockWriteMetrics(reg)

	m.ObserveWrite("update", 150*time.Millisecond, nil)
	m.ObserveWrite("update", 10*time.Millisecond, errors.New("rollback"))
	m.AddPositions("update", 1, 2, 3)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, mfs, "stock_write_failures_total", map[string]string{"op": "update"}))
	assert.Equal(t, 1.0, counterValue(t, mfs, "stock_positions_total", map[string]string{"op": "update", "result": "created"}))
	assert.Equal(t, 2.0, counterValue(t, mfs, "stock_positions_total", map[string]string{"op": "update", "result": "updated"}))
	assert.Equal(t, 3.0, counterValue(t, mfs, "stock_positions_total", map[string]string{"op": "update", "result": "deleted"}))

	h := findMetric(t, mfs, "stock_write_duration_seconds", map[string]string{"op": "update"})
	assert.Equal(t, uint64(2), h.GetHistogram().GetSampleCount())
	assert.Greater(t, h.GetHistogram().GetSampleSum(), 0.0)
}

func TestStockWriteMetrics_NoOpSinRegistro(t *testing.T) {
	m := NewStockWriteMetrics(nil)
	assert.NotPanics(t, func() {
		m.ObserveWrite("create", time.Second, errors.New("x"))
		m.AddPositions("create", 1, 0, 0)
	})

	var nilMetrics *StockWriteMetrics
	assert.NotPanics(t, func() { nilMetrics.AddPositions("create", 1, 0, 0) })
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	return findMetric(t, mfs, name, labels).GetCounter().GetValue()
}

func findMetric(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric
			}
		}
	}
	t.Fatalf("métrica %q con labels %v no encontrada", name, labels)
	return nil
}

func labelsMatch(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range metric.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/stocks/:id", 200, 5*time.Millisecond)
	m.Observe("GET", "/api/v1/stocks/:id", 200, 5*time.Millisecond)
	m.Observe("POST", "", 400, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, 2.0, counterValue(t, mfs, "http_requests_total", map[string]string{"method": "GET", "route": "/api/v1/stocks/:id", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, mfs, "http_requests_total", map[string]string{"route": "unknown", "status": "400"}))

	assert.NotPanics(t, func() { NewHTTPMetrics(nil).Observe("GET", "/", 200, 0) })
}
