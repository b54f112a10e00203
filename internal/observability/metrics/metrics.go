package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request-level signals exposed on /metrics.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Metrics exposes application-level instruments for the registration pipeline.
type Metrics struct {
	registrations  *prometheus.CounterVec
	meteringEvents prometheus.Counter
	resolveErrors  prometheus.Counter
}

const (
	RegistrationOutcomeSuccess    = "success"
	RegistrationOutcomeValidation = "validation_error"
	RegistrationOutcomeResolution = "resolution_error"
	RegistrationOutcomePersist    = "persistence_error"
)

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registration_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_attempts_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		meteringEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registration_metering_events_total",
			Help: "Metering events appended after successful registrations.",
		}),
		resolveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registration_directory_resolve_errors_total",
			Help: "Failed customer directory resolutions.",
		}),
	}

	for _, c := range []prometheus.Collector{m.registrations, m.meteringEvents, m.resolveErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordRegistration increments the attempt counter for one outcome.
func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(strings.TrimSpace(outcome)).Inc()
}

// RecordMeteringEvent increments the metering append counter.
func (m *Metrics) RecordMeteringEvent() {
	if m == nil {
		return
	}
	m.meteringEvents.Inc()
}

// RecordResolveError increments the directory failure counter.
func (m *Metrics) RecordResolveError() {
	if m == nil {
		return
	}
	m.resolveErrors.Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
