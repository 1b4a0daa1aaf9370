package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-delivery-service/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal   prometheus.Counter `name:"rate_limit_exceeded_total"`
	PackagesCreatedTotal     prometheus.Counter `name:"packages_created_total"`
	QuotesServedTotal        prometheus.Counter `name:"quotes_served_total"`
	StatusUpdatesTotal       prometheus.Counter `name:"status_updates_total"`
	TrackingCacheHitsTotal   prometheus.Counter `name:"tracking_cache_hits_total"`
	TrackingCacheMissesTotal prometheus.Counter `name:"tracking_cache_misses_total"`
}

// provideMetrics registers the service counters, reusing an already registered
// collector so that rebuilding the container does not panic.
func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = registerCounter("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.PackagesCreatedTotal, err = registerCounter("packages_created_total", metrics.NewPackagesCreatedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.QuotesServedTotal, err = registerCounter("quotes_served_total", metrics.NewQuotesServedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.StatusUpdatesTotal, err = registerCounter("status_updates_total", metrics.NewStatusUpdatesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.TrackingCacheHitsTotal, err = registerCounter("tracking_cache_hits_total", metrics.NewTrackingCacheHitsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.TrackingCacheMissesTotal, err = registerCounter("tracking_cache_misses_total", metrics.NewTrackingCacheMissesTotal()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
