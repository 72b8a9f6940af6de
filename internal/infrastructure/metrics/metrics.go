// Package metrics registra las métricas Prometheus de la API y de los workers de notificaciones.
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

// Metrics agrupa los collectors. Cada instancia usa su propio registry para que los tests
// puedan crear varias sin colisiones de registro.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	events       *prometheus.CounterVec
	deadLetters  prometheus.Counter
	lowStock     prometheus.Counter
	cleanup      prometheus.Counter
}

// New crea y registra los collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activos_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activos_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activos_stock_events_total",
			Help: "Eventos de stock procesados por resultado (ok, retry, dead).",
		}, []string{"result"}),
		deadLetters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activos_stock_events_dead_letter_total",
			Help: "Eventos de stock enviados a la cola de descarte.",
		}),
		lowStock: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activos_low_stock_alerts_total",
			Help: "Alertas de stock bajo creadas.",
		}),
		cleanup: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activos_notifications_cleaned_total",
			Help: "Notificaciones leídas eliminadas por la limpieza periódica.",
		}),
	}
	m.registry.MustRegister(
		m.httpRequests, m.httpDuration, m.events, m.deadLetters, m.lowStock, m.cleanup,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware mide cada petición por ruta registrada (no por path crudo, para acotar cardinalidad).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics sobre Fiber vía el adaptador de net/http.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// EventProcessed cuenta un evento de stock por resultado.
func (m *Metrics) EventProcessed(result string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(result).Inc()
	if result == ResultDead {
		m.deadLetters.Inc()
	}
}

// LowStockAlert cuenta una alerta de stock bajo.
func (m *Metrics) LowStockAlert() {
	if m == nil {
		return
	}
	m.lowStock.Inc()
}

// NotificationsCleaned suma las notificaciones borradas por la limpieza.
func (m *Metrics) NotificationsCleaned(n int64) {
	if m == nil {
		return
	}
	m.cleanup.Add(float64(n))
}

// Registry expone el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Resultados de procesamiento de eventos.
const (
	ResultOK    = "ok"
	ResultRetry = "retry"
	ResultDead  = "dead"
)
