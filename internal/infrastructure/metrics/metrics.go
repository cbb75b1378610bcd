// Package metrics expone contadores Prometheus del ciclo de vida de préstamos y de las peticiones HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

var _ loan.Recorder = (*Metrics)(nil)

// Metrics agrupa el registro y los colectores de la aplicación.
type Metrics struct {
	registry         *prometheus.Registry
	loansCreated     prometheus.Counter
	returnsProcessed *prometheus.CounterVec
	rejected         *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New crea un registro propio con los colectores de proceso y de Go más los de la aplicación.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		loansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_created_total",
			Help:      "Préstamos registrados.",
		}),
		returnsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "returns_processed_total",
			Help:      "Devoluciones registradas por estado resultante.",
		}, []string{"status"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Operaciones de préstamo o devolución rechazadas por motivo.",
		}, []string{"operation", "reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.loansCreated, m.returnsProcessed, m.rejected, m.httpRequests, m.httpDuration,
	)
	return m
}

// LoanCreated cuenta un préstamo registrado.
func (m *Metrics) LoanCreated() { m.loansCreated.Inc() }

// ReturnProcessed cuenta una devolución por estado resultante.
func (m *Metrics) ReturnProcessed(status entity.LoanStatus) {
	m.returnsProcessed.WithLabelValues(string(status)).Inc()
}

// OperationRejected cuenta una operación rechazada.
func (m *Metrics) OperationRejected(operation, reason string) {
	m.rejected.WithLabelValues(operation, reason).Inc()
}

// Middleware registra método, ruta (patrón, no path concreto) y código de cada petición.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato Prometheus para GET /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// Registry devuelve el registro (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
