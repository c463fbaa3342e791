// Package metrics expone las métricas Prometheus de la API en un registro propio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores de la API. Un valor nil desactiva el registro (los métodos son nil-safe).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	AuthAttempts *prometheus.CounterVec
	OrderEvents  *prometheus.CounterVec
}

// New registra los colectores con el prefijo dado (p. ej. "hoteleria").
func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = "hoteleria"
	}
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de requests HTTP",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de requests HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Intentos de autenticación por operación y resultado",
		}, []string{"operation", "result"}),
		OrderEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_restaurant_order_events_total",
			Help: "Eventos del ciclo de vida de órdenes",
		}, []string{"event"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests, m.HTTPDuration, m.AuthAttempts, m.OrderEvents,
	)
	return m
}

// Middleware registra conteo y duración por ruta (la plantilla, no el path con IDs).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route, code := c.Route().Path, strconv.Itoa(status)
		m.HTTPRequests.WithLabelValues(c.Method(), route, code).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Auth registra un intento de autenticación (login, signup, accept_invitation).
func (m *Metrics) Auth(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.AuthAttempts.WithLabelValues(operation, result).Inc()
}

// Order registra un evento de orden (created, paid, cancelled).
func (m *Metrics) Order(event string) {
	if m == nil {
		return
	}
	m.OrderEvents.WithLabelValues(event).Inc()
}
