package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	OTPRequests     *prometheus.CounterVec
	ProfileFetches  *prometheus.CounterVec
	TokenRefreshes  *prometheus.CounterVec
	RateLimited     prometheus.Counter
	UpstreamLatency *prometheus.HistogramVec
	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		OTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sejam_otp_requests_total",
			Help: "Total number of OTP requests relayed upstream, labeled by outcome",
		}, []string{"outcome"}),
		ProfileFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sejam_profile_fetches_total",
			Help: "Total number of profile fetches, labeled by outcome",
		}, []string{"outcome"}),
		TokenRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sejam_token_refreshes_total",
			Help: "Total number of access token refreshes, labeled by outcome",
		}, []string{"outcome"}),
		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sejam_rate_limited_total",
			Help: "Total number of requests rejected by the anonymous-caller throttle",
		}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sejam_upstream_latency_seconds",
			Help:    "Latency of Sejam upstream calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"call"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sejam_endpoint_latency_seconds",
			Help:    "Latency of gateway endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// Metric label values for call outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalidOTP = "invalid_otp"
	OutcomeUpstream   = "upstream_error"
	OutcomeTransport  = "transport_error"
	OutcomeInternal   = "internal_error"
)
