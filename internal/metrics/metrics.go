package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout session outcomes.
const (
	OutcomeCreated       = "created"
	OutcomeRejected      = "rejected"
	OutcomeError         = "error"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
)

// E-mail outcomes.
const (
	EmailSent    = "sent"
	EmailSkipped = "skipped"
	EmailFailed  = "failed"
)

// Metrics groups every collector the API exposes. Each instance owns its own
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsTotal    *prometheus.CounterVec
	CheckoutSessions     *prometheus.CounterVec
	GatewayNotifications *prometheus.CounterVec
	OrderEmails          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		CheckoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Payment session requests by outcome",
		}, []string{"outcome"}),
		GatewayNotifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_notifications_total",
			Help: "Gateway notifications received by reported status",
		}, []string{"status"}),
		OrderEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_emails_total",
			Help: "Order e-mails by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
	}

	m.Registry.MustRegister(
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
		m.CheckoutSessions,
		m.GatewayNotifications,
		m.OrderEmails,
	)
	return m
}

// Middleware records latency and count for every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
