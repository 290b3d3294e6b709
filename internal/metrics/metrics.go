// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ArtworkGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artwork_generated_total",
		Help: "Total number of artworks generated",
	}, []string{"style", "provider"})

	ArtworkFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artwork_failed_total",
		Help: "Total number of failed artwork generations",
	}, []string{"reason"})

	GenerationCostDollars = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_cost_dollars_total",
		Help: "Cumulative estimated AI generation spend in dollars",
	})

	ProductsAssembledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_assembled_total",
		Help: "Total number of products assembled from artwork",
	})

	FeedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_feedback_total",
		Help: "Total number of recorded feedback actions",
	}, []string{"action"})

	AssetDeletesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "asset_deletes_failed_total",
		Help: "Total number of failed reject-side asset deletions",
	})

	ListingsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_published_total",
		Help: "Total number of listings published to marketplaces",
	}, []string{"platform"})

	ListingsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_failed_total",
		Help: "Total number of failed listing publishes",
	}, []string{"platform", "reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
