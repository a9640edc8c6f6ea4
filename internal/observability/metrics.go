package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for catalog-service
type Metrics struct {
	// Catalog mutations
	CatalogWritesTotal        *prometheus.CounterVec
	CatalogWriteFailuresTotal *prometheus.CounterVec

	// List cache
	CacheRequestsTotal *prometheus.CounterVec
	CacheMissesTotal   *prometheus.CounterVec

	// HTTP
	HTTPRequestDuration *prometheus.HistogramVec

	// Outbox publisher
	OutboxEventsPublished *prometheus.CounterVec
	OutboxEventsFailed    *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics with the default registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates metrics with a custom registry (useful for testing)
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CatalogWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_writes_total",
				Help: "Total number of committed catalog mutations",
			},
			[]string{"entity", "operation"}, // category/product, save/update/delete
		),
		CatalogWriteFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_write_failures_total",
				Help: "Total number of failed catalog mutations",
			},
			[]string{"entity", "operation"},
		),
		CacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_requests_total",
				Help: "Total number of list requests served through the cache",
			},
			[]string{"list"}, // categories, products
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_misses_total",
				Help: "Total number of list requests that loaded from storage",
			},
			[]string{"list"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		OutboxEventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_outbox_events_published_total",
				Help: "Total number of outbox events successfully published",
			},
			[]string{"event_type"},
		),
		OutboxEventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_outbox_events_failed_total",
				Help: "Total number of outbox events failed to publish",
			},
			[]string{"event_type"},
		),
	}
}
