// Package metrics exposes Prometheus instrumentation for SEO runs and the
// external API calls they make.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seopilot_runs_total",
		Help: "SEO runs by outcome (completed, locked, failed).",
	}, []string{"outcome"})

	ProductsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seopilot_products_processed_total",
		Help: "Per-product decisions by action.",
	}, []string{"action"})

	ShopifyCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seopilot_shopify_calls_total",
		Help: "Shopify Admin API calls by operation and result.",
	}, []string{"operation", "result"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seopilot_run_duration_seconds",
		Help:    "Wall-clock duration of one SEO run.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	KeywordCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seopilot_keyword_cache_total",
		Help: "Keyword map cache lookups by result (hit, rebuild).",
	}, []string{"result"})
)
