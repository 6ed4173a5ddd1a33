package provider

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

var (
	vendorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_vendor_requests_total",
		Help: "Total number of vendor calls by operation and outcome",
	}, []string{"op", "outcome"})

	vendorRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scout_vendor_request_duration_seconds",
		Help:    "Duration of vendor calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

// metricsProvider records Prometheus metrics around an inner Provider.
type metricsProvider struct {
	inner Provider
}

// NewMetricsProvider wraps the given provider with request metrics.
func NewMetricsProvider(inner Provider) Provider {
	return &metricsProvider{inner: inner}
}

func (m *metricsProvider) ResolveTeam(ctx context.Context, query string) (models.TeamRef, error) {
	start := time.Now()
	ref, err := m.inner.ResolveTeam(ctx, query)
	m.observe("resolve_team", start, err)
	return ref, err
}

func (m *metricsProvider) TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error) {
	start := time.Now()
	matches, ref, err := m.inner.TeamMatches(ctx, query, limit)
	m.observe("team_matches", start, err)
	return matches, ref, err
}

func (m *metricsProvider) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	vendorRequests.WithLabelValues(op, outcome).Inc()
	vendorRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
