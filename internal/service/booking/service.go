package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/cache"
	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/pricing"
)

// trackingIDAttempts bounds retries when a generated tracking code collides
// with an existing one.
const trackingIDAttempts = 5

// CreateInput carries everything needed to book a package.
type CreateInput struct {
	Sender      domain.Address
	Receiver    domain.Address
	Details     domain.PackageDetails
	ServiceType domain.ServiceType
	PickupDate  string
}

// TrackResult is the public tracking view: the package plus its full status
// history, oldest event first.
type TrackResult struct {
	Package domain.Package
	History []domain.TrackingEvent
}

// Deps bundles the optional collaborators of a booking Service.
type Deps struct {
	Cache           cache.TrackingCache
	PackagesCreated counter
	QuotesServed    counter
	CacheHits       counter
	CacheMisses     counter
}

// Service coordinates package booking, price quotes and tracking lookups.
type Service struct {
	packages         packageRepository
	tracking         trackingRepository
	cache            cache.TrackingCache
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
	newTrackingID    func() string

	packagesCreated counter
	quotesServed    counter
	cacheHits       counter
	cacheMisses     counter
}

// NewService creates and configures a booking Service.
func NewService(packages packageRepository, tracking trackingRepository, logger logx.Logger, timeout time.Duration, deps Deps) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop()
	}
	return &Service{
		packages:         packages,
		tracking:         tracking,
		cache:            deps.Cache,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		newTrackingID:    randomTrackingID,
		packagesCreated:  deps.PackagesCreated,
		quotesServed:     deps.QuotesServed,
		cacheHits:        deps.CacheHits,
		cacheMisses:      deps.CacheMisses,
	}
}

func randomTrackingID() string {
	return fmt.Sprintf("CD%06d", rand.Intn(900000)+100000)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Quote computes a shipping estimate between two cities without persisting
// anything. The quoted price matches the price Create would assign.
func (s *Service) Quote(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error) {
	distance, err := pricing.Distance(senderCity, receiverCity)
	if err != nil {
		return pricing.Quote{}, err
	}

	quote, err := pricing.Estimate(distance, weightKG, service)
	if err != nil {
		return pricing.Quote{}, err
	}
	quote.DistanceKM = pricing.Round2(quote.DistanceKM)

	if s.quotesServed != nil {
		s.quotesServed.Inc()
	}
	return quote, nil
}

// Create books a package for the given user. It assigns a fresh tracking
// code, prices the shipment and records the initial order_placed event in the
// same transaction as the package row.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Package, error) {
	if userID == "" {
		return nil, apperr.ErrInvalid
	}
	if !in.Sender.Complete() || !in.Receiver.Complete() {
		return nil, apperr.ErrInvalid
	}
	if !in.Details.Type.Valid() || in.Details.Weight <= 0 {
		return nil, apperr.ErrInvalid
	}
	if !in.ServiceType.Valid() {
		return nil, apperr.ErrInvalid
	}
	if strings.TrimSpace(in.PickupDate) == "" {
		return nil, apperr.ErrInvalid
	}

	distance, err := pricing.Distance(in.Sender.City, in.Receiver.City)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.Estimate(distance, in.Details.Weight, in.ServiceType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pkg := &domain.Package{
		ID:                uuid.NewString(),
		UserID:            userID,
		Sender:            in.Sender,
		Receiver:          in.Receiver,
		Details:           in.Details,
		ServiceType:       in.ServiceType,
		PickupDate:        strings.TrimSpace(in.PickupDate),
		DistanceKM:        pricing.Round2(distance),
		Price:             quote.EstimatedPrice,
		Status:            domain.StatusOrderPlaced,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(estimatedTransit(in.ServiceType)),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	for attempt := 0; attempt < trackingIDAttempts; attempt++ {
		pkg.TrackingID = s.newTrackingID()
		err = s.packages.CreateWithEvent(ctx, pkg, domain.TrackingEvent{
			TrackingID: pkg.TrackingID,
			PackageID:  pkg.ID,
			Status:     domain.StatusOrderPlaced,
			Location:   pkg.Sender.City,
			Notes:      "Order has been placed successfully",
			UpdatedBy:  userID,
			Timestamp:  now,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	if s.packagesCreated != nil {
		s.packagesCreated.Inc()
	}
	s.logger.Info("package created",
		logx.String("event", "package_created"),
		logx.String("tracking_id", pkg.TrackingID),
		logx.String("service_type", string(pkg.ServiceType)),
		logx.Float64("price", pkg.Price),
	)
	return pkg, nil
}

// estimatedTransit returns the promised transit window for a tier. Standard
// shipments get three days, the paid tiers one.
func estimatedTransit(service domain.ServiceType) time.Duration {
	if service == domain.ServiceStandard {
		return 72 * time.Hour
	}
	return 24 * time.Hour
}

// Track looks up a package and its full history by public tracking code.
// Lookups go through the cache first; cache failures are logged and the
// request falls through to the database.
func (s *Service) Track(ctx context.Context, trackingID string) (TrackResult, error) {
	trackingID = strings.ToUpper(strings.TrimSpace(trackingID))
	if !domain.ValidateTrackingID(trackingID) {
		return TrackResult{}, apperr.ErrNotFound
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if snap, err := s.cache.Get(ctx, trackingID); err != nil {
		s.logger.Warn("tracking cache read failed", logx.String("tracking_id", trackingID), logx.Err(err))
	} else if snap != nil {
		if s.cacheHits != nil {
			s.cacheHits.Inc()
		}
		return TrackResult{Package: snap.Package, History: snap.History}, nil
	}
	if s.cacheMisses != nil {
		s.cacheMisses.Inc()
	}

	pkg, err := s.packages.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return TrackResult{}, err
	}
	if pkg == nil {
		return TrackResult{}, apperr.ErrNotFound
	}

	history, err := s.tracking.ListByTrackingID(ctx, trackingID)
	if err != nil {
		return TrackResult{}, err
	}
	domain.SortEventsAscending(history)

	if err := s.cache.Set(ctx, trackingID, cache.TrackingSnapshot{Package: *pkg, History: history}); err != nil {
		s.logger.Warn("tracking cache write failed", logx.String("tracking_id", trackingID), logx.Err(err))
	}

	return TrackResult{Package: *pkg, History: history}, nil
}

// ListForUser returns the user's packages, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Package, error) {
	if userID == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.packages.ListByUser(ctx, userID)
}

// ListAll returns every package in the system, newest first.
func (s *Service) ListAll(ctx context.Context) ([]domain.Package, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.packages.ListAll(ctx)
}

// Stats returns the aggregate counters for the admin dashboard.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.packages.Stats(ctx)
}
