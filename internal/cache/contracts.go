package cache

import (
	"context"

	"courier-delivery-service/internal/domain"
)

// TrackingSnapshot is the cached public view of a package and its history.
type TrackingSnapshot struct {
	Package domain.Package
	History []domain.TrackingEvent
}

// TrackingCache caches public tracking lookups. Get returns (nil, nil) on a
// cache miss; a cache error is never fatal to the caller.
type TrackingCache interface {
	Get(ctx context.Context, trackingID string) (*TrackingSnapshot, error)
	Set(ctx context.Context, trackingID string, snap TrackingSnapshot) error
	Invalidate(ctx context.Context, trackingID string) error
}
