package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collectors agrupa as métricas do admin-api.
type Collectors struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	adjustments  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// NewCollectors cria um registry próprio (sem estado global, testes podem criar vários).
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collectors{
		Registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_balance_adjustments_total",
			Help: "Manual balance adjustments by type and outcome.",
		}, []string{"type", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Read cache lookups by keyspace and result.",
		}, []string{"keyspace", "result"}),
	}
	reg.MustRegister(c.httpRequests, c.httpDuration, c.adjustments, c.cacheLookups)
	return c
}

func (c *Collectors) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAdjustment conta um ajuste; outcome é "applied" ou a classe do erro
func (c *Collectors) ObserveAdjustment(adjType, outcome string) {
	c.adjustments.WithLabelValues(adjType, outcome).Inc()
}

// ObserveCache conta um lookup; result é "hit", "miss" ou "error"
func (c *Collectors) ObserveCache(keyspace, result string) {
	c.cacheLookups.WithLabelValues(keyspace, result).Inc()
}
