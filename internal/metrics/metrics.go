// Package metrics declares the Prometheus collectors of the movie client:
// cache hit/miss counters, remote catalog outcomes and orchestrator events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moviekeeper"

// Resource label values.
const (
	ResourceList    = "list"
	ResourceDetail  = "detail"
	ResourceSession = "session"
)

// Metrics holds the client-side collectors.
type Metrics struct {
	CacheHits         *prometheus.CounterVec
	CacheMisses       *prometheus.CounterVec
	CacheCorruptReads prometheus.Counter
	CatalogRequests   *prometheus.CounterVec
	DetailFallbacks   prometheus.Counter
	FencedWrites      prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg gives
// working but unregistered collectors, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Reads served from the local cache.",
		}, []string{"resource"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Reads that found no usable cache entry.",
		}, []string{"resource"}),
		CacheCorruptReads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_corrupt_reads_total",
			Help:      "Stored values that could not be decoded and were treated as absent.",
		}),
		CatalogRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Remote catalog exchanges by operation and outcome.",
		}, []string{"operation", "outcome"}),
		DetailFallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fallbacks_total",
			Help:      "Detail requests answered from the in-memory summary after a failed fetch.",
		}),
		FencedWrites: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_fenced_writes_total",
			Help:      "List fetches whose snapshot was not persisted because a newer fetch already was.",
		}),
	}
}

// Handler exposes the collectors gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
