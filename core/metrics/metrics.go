// Package metrics holds the Prometheus collectors of the relay.
package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provisioning metrics.
var (
	ProvisionRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment_relay",
			Name:      "provision_runs_total",
			Help:      "Total number of schema provisioning runs",
		},
		[]string{"result"}, // "ok" / "error"
	)

	ProvisionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "payment_relay",
			Name:      "provision_duration_seconds",
			Help:      "Schema provisioning duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CollectionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "payment_relay",
			Name:      "collections_created_total",
			Help:      "Total number of collections created by provisioning",
		},
	)

	FieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment_relay",
			Name:      "provision_fields_total",
			Help:      "Field creation attempts by outcome",
		},
		[]string{"outcome"}, // "created" / "skipped" / "failed"
	)
)

// Relay metrics.
var (
	RelayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment_relay",
			Name:      "relay_requests_total",
			Help:      "Total number of relayed gateway requests",
		},
		[]string{"category", "action", "status"},
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payment_relay",
			Name:      "gateway_request_duration_seconds",
			Help:      "Payment gateway request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"category"},
	)

	AuditLogWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment_relay",
			Name:      "audit_log_writes_total",
			Help:      "Audit log writes by sink and result",
		},
		[]string{"sink", "result"}, // sink: "document" / "archive"
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProvisionRunsTotal,
			ProvisionDuration,
			CollectionsCreatedTotal,
			FieldsTotal,
			RelayRequestsTotal,
			GatewayRequestDuration,
			AuditLogWritesTotal,
		)
	})
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
