package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, CheckoutsTotal)
	assert.NotNil(t, CheckoutDuration)
	assert.NotNil(t, OrdersCreatedTotal)
	assert.NotNil(t, OrderStatusChangesTotal)
	assert.NotNil(t, CircuitBreakerState)
	assert.NotNil(t, MessagesPublishedTotal)

	// 重复调用不应因重复注册而panic
	assert.NotPanics(t, func() { InitMetrics() })
}

// TestBusinessCounters 测试业务计数器
func TestBusinessCounters(t *testing.T) {
	InitMetrics()

	before := counterValue(t, OrdersCreatedTotal)
	OrdersCreatedTotal.Inc()
	OrdersCreatedTotal.Inc()
	assert.Equal(t, before+2, counterValue(t, OrdersCreatedTotal))

	CheckoutsTotal.WithLabelValues("success").Inc()
	CheckoutsTotal.WithLabelValues("success").Inc()
	CheckoutsTotal.WithLabelValues("failure").Inc()
	assert.Equal(t, float64(2), counterValue(t, CheckoutsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), counterValue(t, CheckoutsTotal.WithLabelValues("failure")))

	OrderStatusChangesTotal.WithLabelValues("shipped").Inc()
	assert.Equal(t, float64(1), counterValue(t, OrderStatusChangesTotal.WithLabelValues("shipped")))
}

// TestHTTPMetrics 测试HTTP指标
func TestHTTPMetrics(t *testing.T) {
	InitMetrics()

	HTTPRequestsTotal.WithLabelValues("GET", "/api/books", "200").Inc()
	HTTPRequestsTotal.WithLabelValues("GET", "/api/books", "200").Inc()
	HTTPRequestsTotal.WithLabelValues("POST", "/api/orders", "201").Inc()
	assert.Equal(t, float64(2), counterValue(t, HTTPRequestsTotal.WithLabelValues("GET", "/api/books", "200")))

	base := gaugeValue(t, HTTPRequestsInProgress)
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Inc()
	assert.Equal(t, base+2, gaugeValue(t, HTTPRequestsInProgress))
	HTTPRequestsInProgress.Dec()
	HTTPRequestsInProgress.Dec()
	assert.Equal(t, base, gaugeValue(t, HTTPRequestsInProgress))

	HTTPRequestDuration.WithLabelValues("GET", "/api/books").Observe(0.05)
	HTTPRequestDuration.WithLabelValues("GET", "/api/books").Observe(0.1)
	count, sum := histogramStats(t, HTTPRequestDuration.WithLabelValues("GET", "/api/books"))
	assert.Equal(t, uint64(2), count)
	assert.InDelta(t, 0.15, sum, 1e-9)
}

// TestCircuitBreakerGauge 测试熔断器状态指标
func TestCircuitBreakerGauge(t *testing.T) {
	InitMetrics()

	CircuitBreakerState.WithLabelValues("mq-publish").Set(1) // OPEN
	assert.Equal(t, float64(1), gaugeValue(t, CircuitBreakerState.WithLabelValues("mq-publish")))

	CircuitBreakerState.WithLabelValues("mq-publish").Set(0) // CLOSED
	assert.Equal(t, float64(0), gaugeValue(t, CircuitBreakerState.WithLabelValues("mq-publish")))
}

// counterValue 读取Counter当前值
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}

// gaugeValue 读取Gauge当前值
func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.Gauge.GetValue()
}

// histogramStats 读取Histogram的观测次数与总和
func histogramStats(t *testing.T, o prometheus.Observer) (uint64, float64) {
	t.Helper()
	h, ok := o.(prometheus.Histogram)
	require.True(t, ok)

	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.Histogram.GetSampleCount(), m.Histogram.GetSampleSum()
}
