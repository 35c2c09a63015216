package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics collects request-level and upload-session counters on a
// private registry.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	sessionValidations *prometheus.CounterVec
	submissionsTotal   *prometheus.CounterVec
	documentsUploaded  *prometheus.CounterVec
	webhookDeliveries  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "onboarding",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "onboarding",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	sessionValidations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "session",
			Name:      "validations_total",
			Help:      "Token validations by resulting session state.",
		},
		[]string{"service", "state"},
	)
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "session",
			Name:      "submissions_total",
			Help:      "Document submissions by outcome.",
		},
		[]string{"service", "outcome"},
	)
	documentsUploaded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "upload",
			Name:      "documents_total",
			Help:      "Successfully stored documents by slot.",
		},
		[]string{"service", "slot"},
	)
	webhookDeliveries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "webhook",
			Name:      "deliveries_total",
			Help:      "Completion webhook delivery attempts by status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		sessionValidations,
		submissionsTotal,
		documentsUploaded,
		webhookDeliveries,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		sessionValidations: sessionValidations,
		submissionsTotal:   submissionsTotal,
		documentsUploaded:  documentsUploaded,
		webhookDeliveries:  webhookDeliveries,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records totals, durations and in-flight count per request.
// c.FullPath() keeps the label cardinality at the route level.
func (m *HTTPServerMetrics) Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		m.requestTotal.WithLabelValues(
			service,
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(service, c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

func (m *HTTPServerMetrics) RecordValidation(service, state string) {
	m.sessionValidations.WithLabelValues(service, state).Inc()
}

func (m *HTTPServerMetrics) RecordSubmission(service, outcome string) {
	m.submissionsTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordDocument(service, slot string) {
	m.documentsUploaded.WithLabelValues(service, slot).Inc()
}

func (m *HTTPServerMetrics) RecordWebhookDelivery(service, status string) {
	m.webhookDeliveries.WithLabelValues(service, status).Inc()
}
