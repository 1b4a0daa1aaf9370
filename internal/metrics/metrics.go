package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewPackagesCreatedTotal returns a Prometheus counter for the number of booked packages
func NewPackagesCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "packages_created_total",
		Help: "Total number of booked packages",
	})
}

// NewQuotesServedTotal returns a Prometheus counter for the number of price quotes served
func NewQuotesServedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotes_served_total",
		Help: "Total number of price quotes served",
	})
}

// NewStatusUpdatesTotal returns a Prometheus counter for the number of applied status updates
func NewStatusUpdatesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "status_updates_total",
		Help: "Total number of applied package status updates",
	})
}

// NewTrackingCacheHitsTotal returns a Prometheus counter for tracking cache hits
func NewTrackingCacheHitsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_cache_hits_total",
		Help: "Total number of tracking lookups served from cache",
	})
}

// NewTrackingCacheMissesTotal returns a Prometheus counter for tracking cache misses
func NewTrackingCacheMissesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_cache_misses_total",
		Help: "Total number of tracking lookups that missed the cache",
	})
}
