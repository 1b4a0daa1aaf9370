package trackingfeed

import (
	"context"

	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/repository"
)

// Tx mirrors the package-transaction surface the feed needs.
type Tx interface {
	GetByTrackingIDForUpdate(ctx context.Context, trackingID string) (*domain.Package, error)
	UpdateStatus(ctx context.Context, packageID string, status domain.PackageStatus) error
	AppendEvent(ctx context.Context, ev domain.TrackingEvent) error
}

// txRunner runs a function inside a package transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// counter is satisfied by prometheus counters.
type counter interface {
	Inc()
}

// repoAdapter adapts *repository.PackageRepo to the local txRunner contract.
type repoAdapter struct{ repo *repository.PackageRepo }

func (a repoAdapter) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return a.repo.WithTx(ctx, func(tx repository.PackageTx) error { return fn(tx) })
}
