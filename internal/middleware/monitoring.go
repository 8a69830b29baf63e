package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はHTTPと注文操作のカウンタ。Registryごとに作る
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	orderOperations     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "makeupsales_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "makeupsales_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "path", "status"},
		),
		orderOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "makeupsales_order_operations_total",
				Help: "Total number of order operations",
			},
			[]string{"operation", "status"},
		),
	}
	reg.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.orderOperations)
	return m
}

// Prometheus はRequestLoggerの内側に置く（ステータス確定後に数える）
func (m *Metrics) Prometheus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)

			m.httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.httpRequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Record は注文操作の成否を数える
func (m *Metrics) Record(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.orderOperations.WithLabelValues(operation, status).Inc()
}
