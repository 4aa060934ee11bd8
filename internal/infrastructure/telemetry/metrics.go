// Package telemetry provides prometheus metrics and OpenTelemetry spans for the API client.
package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric exported by the client
const Namespace = "lupon"

// Cache tiers and lookup results used as label values
const (
	TierMemory  = "memory"
	TierStorage = "storage"

	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultExpired = "expired"
)

// Token refresh outcomes
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
)

// ClientMetrics holds the collectors for API client activity.
// A nil *ClientMetrics is valid and records nothing.
type ClientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

// NewClientMetrics creates the collectors and registers them with reg.
// Pass a dedicated prometheus.NewRegistry() to avoid clashing with the default registry.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests by method and status code.",
			},
			[]string{"method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		refreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "auth",
				Name:      "token_refresh_total",
				Help:      "Total number of access token refresh attempts by result.",
			},
			[]string{"result"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Cache lookups by tier and result.",
			},
			[]string{"tier", "result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration, m.refreshTotal, m.cacheLookups)
	}
	return m
}

// ObserveRequest records one finished request. A zero status means the
// request failed before a response arrived.
func (m *ClientMetrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, label).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncRefresh counts a token refresh attempt
func (m *ClientMetrics) IncRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}

// IncCacheLookup counts a cache lookup against one tier
func (m *ClientMetrics) IncCacheLookup(tier, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(tier, result).Inc()
}
