package trackingfeed

import (
	"context"
	"strings"
	"time"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/cache"
	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/repository"
)

// Update is one status change to apply to a package, whether it arrived over
// HTTP or from the tracking topic.
type Update struct {
	TrackingID string
	Status     domain.PackageStatus
	Location   string
	Notes      string
	UpdatedBy  string
	Timestamp  time.Time
}

// Service applies status updates to packages. Updates only move forward
// through the delivery pipeline; a stale or repeated update is a conflict.
type Service struct {
	runner           txRunner
	cache            cache.TrackingCache
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
	statusUpdates    counter
}

// NewService creates a feed Service on top of the package repository.
func NewService(repo *repository.PackageRepo, trackingCache cache.TrackingCache, logger logx.Logger, timeout time.Duration, statusUpdates counter) *Service {
	return NewServiceWithDeps(repoAdapter{repo: repo}, trackingCache, logger, timeout, statusUpdates)
}

// NewServiceWithDeps wires a Service from its raw collaborators.
func NewServiceWithDeps(runner txRunner, trackingCache cache.TrackingCache, logger logx.Logger, timeout time.Duration, statusUpdates counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if trackingCache == nil {
		trackingCache = cache.Nop()
	}
	return &Service{
		runner:           runner,
		cache:            trackingCache,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		statusUpdates:    statusUpdates,
	}
}

// Apply validates the update, moves the package forward and appends the
// history entry, all in one transaction. The cached tracking snapshot is
// invalidated after commit so public lookups never serve a stale status.
func (s *Service) Apply(ctx context.Context, up Update) error {
	up.TrackingID = strings.ToUpper(strings.TrimSpace(up.TrackingID))
	up.Location = strings.TrimSpace(up.Location)

	if !domain.ValidateTrackingID(up.TrackingID) {
		return apperr.ErrInvalid
	}
	if !up.Status.Valid() {
		return apperr.ErrInvalid
	}
	if up.Location == "" {
		return apperr.ErrInvalid
	}
	if up.Timestamp.IsZero() {
		up.Timestamp = s.now()
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	err := s.runner.WithTx(ctx, func(tx Tx) error {
		pkg, err := tx.GetByTrackingIDForUpdate(ctx, up.TrackingID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return apperr.ErrNotFound
		}
		if !pkg.Status.CanTransitionTo(up.Status) {
			return apperr.ErrConflict
		}
		if err := tx.UpdateStatus(ctx, pkg.ID, up.Status); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, domain.TrackingEvent{
			TrackingID: up.TrackingID,
			PackageID:  pkg.ID,
			Status:     up.Status,
			Location:   up.Location,
			Notes:      up.Notes,
			UpdatedBy:  up.UpdatedBy,
			Timestamp:  up.Timestamp,
		})
	})
	if err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, up.TrackingID); err != nil {
		s.logger.Warn("tracking cache invalidation failed",
			logx.String("tracking_id", up.TrackingID), logx.Err(err))
	}

	if s.statusUpdates != nil {
		s.statusUpdates.Inc()
	}
	s.logger.Info("package status updated",
		logx.String("event", "status_updated"),
		logx.String("tracking_id", up.TrackingID),
		logx.String("status", string(up.Status)),
	)
	return nil
}
