package cache

import "context"

type nopCache struct{}

// Nop returns a TrackingCache that caches nothing. Used when Redis is not
// configured.
func Nop() TrackingCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) (*TrackingSnapshot, error) { return nil, nil }
func (nopCache) Set(context.Context, string, TrackingSnapshot) error    { return nil }
func (nopCache) Invalidate(context.Context, string) error               { return nil }

var _ TrackingCache = nopCache{}
