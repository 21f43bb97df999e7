// Package metrics exposes Prometheus collectors for the HTTP layer, webhook
// ingestion and the audit queue.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "granito_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status_code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "granito_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "granito_shopify_webhooks_total",
		Help: "Shopify webhook deliveries by topic and outcome.",
	}, []string{"topic", "outcome"})

	auditDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granito_audit_dropped_total",
		Help: "Audit entries dropped because the queue was full or the insert failed.",
	})
)

// Webhook outcomes.
const (
	WebhookRejected  = "rejected"
	WebhookDuplicate = "duplicate"
	WebhookProcessed = "processed"
	WebhookFailed    = "failed"
)

func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func WebhookEvent(topic, outcome string) {
	webhookEventsTotal.WithLabelValues(topic, outcome).Inc()
}

func AuditDropped() {
	auditDroppedTotal.Inc()
}
