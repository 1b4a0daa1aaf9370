package booking

import (
	"context"

	"courier-delivery-service/internal/domain"
)

// packageRepository defines storage operations required by the booking layer.
type packageRepository interface {
	CreateWithEvent(ctx context.Context, p *domain.Package, ev domain.TrackingEvent) error
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Package, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Package, error)
	ListAll(ctx context.Context) ([]domain.Package, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// trackingRepository reads a package's status history.
type trackingRepository interface {
	ListByTrackingID(ctx context.Context, trackingID string) ([]domain.TrackingEvent, error)
}

// counter is satisfied by prometheus counters.
type counter interface {
	Inc()
}
