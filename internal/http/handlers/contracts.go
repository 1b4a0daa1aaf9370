package handlers

import (
	"context"

	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/pricing"
	"courier-delivery-service/internal/service/accounts"
	"courier-delivery-service/internal/service/booking"
	"courier-delivery-service/internal/service/trackingfeed"
)

type accountsUsecase interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error)
	Login(ctx context.Context, email, password string) (accounts.Session, error)
}

// NewAccountsUsecase wires an accounts.Service into an accountsUsecase.
func NewAccountsUsecase(svc *accounts.Service) accountsUsecase {
	return svc
}

type bookingUsecase interface {
	Quote(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error)
	Create(ctx context.Context, userID string, in booking.CreateInput) (*domain.Package, error)
	Track(ctx context.Context, trackingID string) (booking.TrackResult, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Package, error)
	ListAll(ctx context.Context) ([]domain.Package, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// NewBookingUsecase wires a booking.Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}

type feedUsecase interface {
	Apply(ctx context.Context, up trackingfeed.Update) error
}

// NewFeedUsecase wires a trackingfeed.Service into a feedUsecase.
func NewFeedUsecase(svc *trackingfeed.Service) feedUsecase {
	return svc
}
