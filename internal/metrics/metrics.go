package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staking_resolver"

const (
	ReasonEmptyBatch   = "empty_batch"
	ReasonPartialBatch = "partial_batch"
)

// ResolverMetrics counts cache traffic and remote queries of the resolvers.
// A nil *ResolverMetrics is valid and records nothing.
type ResolverMetrics struct {
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	queries     *prometheus.CounterVec
	registry    *prometheus.Registry
}

func NewResolverMetrics() *ResolverMetrics {
	m := &ResolverMetrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Resolve calls answered from the block cache.",
		}, []string{"resolver"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Resolve calls that rebuilt the block cache.",
		}, []string{"resolver"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_fallbacks_total",
			Help:      "Batches abandoned for a single direct query.",
		}, []string{"resolver", "reason"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_queries_total",
			Help:      "Remote staking storage queries by outcome.",
		}, []string{"query", "outcome"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.cacheHits, m.cacheMisses, m.fallbacks, m.queries)
	return m
}

func (m *ResolverMetrics) Hit(resolver string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(resolver).Inc()
}

func (m *ResolverMetrics) Miss(resolver string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(resolver).Inc()
}

func (m *ResolverMetrics) Fallback(resolver, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(resolver, reason).Inc()
}

func (m *ResolverMetrics) Query(query string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.queries.WithLabelValues(query, outcome).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *ResolverMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
