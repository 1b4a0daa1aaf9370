package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/http/handlers"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/pricing"
	"courier-delivery-service/internal/service/booking"
)

type stubBookingUsecase struct {
	quoteFn       func(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error)
	createFn      func(ctx context.Context, userID string, in booking.CreateInput) (*domain.Package, error)
	trackFn       func(ctx context.Context, trackingID string) (booking.TrackResult, error)
	listForUserFn func(ctx context.Context, userID string) ([]domain.Package, error)
	listAllFn     func(ctx context.Context) ([]domain.Package, error)
	statsFn       func(ctx context.Context) (domain.Stats, error)
}

func (s *stubBookingUsecase) Quote(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error) {
	return s.quoteFn(ctx, senderCity, receiverCity, weightKG, service)
}

func (s *stubBookingUsecase) Create(ctx context.Context, userID string, in booking.CreateInput) (*domain.Package, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubBookingUsecase) Track(ctx context.Context, trackingID string) (booking.TrackResult, error) {
	return s.trackFn(ctx, trackingID)
}

func (s *stubBookingUsecase) ListForUser(ctx context.Context, userID string) ([]domain.Package, error) {
	return s.listForUserFn(ctx, userID)
}

func (s *stubBookingUsecase) ListAll(ctx context.Context) ([]domain.Package, error) {
	return s.listAllFn(ctx)
}

func (s *stubBookingUsecase) Stats(ctx context.Context) (domain.Stats, error) {
	return s.statsFn(ctx)
}

func asUser(req *http.Request, u *domain.User) *http.Request {
	return req.WithContext(middleware.ContextWithUser(req.Context(), u))
}

func customer() *domain.User {
	return &domain.User{ID: "u-1", Email: "asha@example.com", Role: domain.RoleCustomer}
}

func TestPackageHandler_CalculatePrice_OK(t *testing.T) {
	t.Parallel()

	uc := &stubBookingUsecase{
		quoteFn: func(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error) {
			require.Equal(t, "mumbai", senderCity)
			require.Equal(t, "delhi", receiverCity)
			require.Equal(t, 2.0, weightKG)
			require.Equal(t, domain.ServiceExpress, service)
			return pricing.Quote{DistanceKM: 1400, WeightKG: 2, ServiceType: service, EstimatedPrice: 4485}, nil
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	body := `{"sender_city":"mumbai","receiver_city":"delhi","weight":2,"service_type":"express"}`
	req := httptest.NewRequest(http.MethodPost, "/api/packages/calculate-price", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.CalculatePrice(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		DistanceKM     float64 `json:"distance_km"`
		WeightKG       float64 `json:"weight_kg"`
		EstimatedPrice float64 `json:"estimated_price"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 1400.0, resp.DistanceKM)
	require.Equal(t, 2.0, resp.WeightKG)
	require.Equal(t, 4485.0, resp.EstimatedPrice)
}

func TestPackageHandler_CalculatePrice_Invalid(t *testing.T) {
	t.Parallel()

	uc := &stubBookingUsecase{
		quoteFn: func(ctx context.Context, senderCity, receiverCity string, weightKG float64, service domain.ServiceType) (pricing.Quote, error) {
			return pricing.Quote{}, apperr.ErrInvalid
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	body := `{"sender_city":"","receiver_city":"delhi","weight":-1,"service_type":"express"}`
	req := httptest.NewRequest(http.MethodPost, "/api/packages/calculate-price", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.CalculatePrice(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPackageHandler_Create_Created(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &stubBookingUsecase{
		createFn: func(ctx context.Context, userID string, in booking.CreateInput) (*domain.Package, error) {
			require.Equal(t, "u-1", userID)
			require.Equal(t, "Mumbai", in.Sender.City)
			require.Equal(t, domain.ServiceExpress, in.ServiceType)
			return &domain.Package{
				ID:                "pkg-1",
				TrackingID:        "CD123456",
				UserID:            userID,
				Sender:            in.Sender,
				Receiver:          in.Receiver,
				Details:           in.Details,
				ServiceType:       in.ServiceType,
				Status:            domain.StatusOrderPlaced,
				Price:             4485,
				CreatedAt:         now,
				EstimatedDelivery: now.Add(24 * time.Hour),
			}, nil
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	body := `{
		"sender":{"name":"Asha","phone":"9999999999","address":"12 MG Road","city":"Mumbai","state":"MH","postal_code":"400001","country":"India"},
		"receiver":{"name":"Ravi","phone":"8888888888","address":"7 Ring Road","city":"Delhi","state":"DL","postal_code":"110001","country":"India"},
		"package_details":{"type":"parcel","weight":2},
		"service_type":"express",
		"pickup_date":"2025-06-10"
	}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/packages/create", strings.NewReader(body)), customer())
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		TrackingID string  `json:"tracking_id"`
		Status     string  `json:"status"`
		Price      float64 `json:"price"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "CD123456", resp.TrackingID)
	require.Equal(t, "order_placed", resp.Status)
	require.Equal(t, 4485.0, resp.Price)
}

func TestPackageHandler_Create_NoUser(t *testing.T) {
	t.Parallel()

	h := handlers.NewPackageHandler(&stubBookingUsecase{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/packages/create", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.Create(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPackageHandler_Track_OK(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &stubBookingUsecase{
		trackFn: func(ctx context.Context, trackingID string) (booking.TrackResult, error) {
			require.Equal(t, "CD123456", trackingID)
			return booking.TrackResult{
				Package: domain.Package{ID: "pkg-1", TrackingID: trackingID, Status: domain.StatusInTransit},
				History: []domain.TrackingEvent{
					{Status: domain.StatusOrderPlaced, Location: "Mumbai", Timestamp: ts},
					{Status: domain.StatusInTransit, Location: "Nagpur hub", Timestamp: ts.Add(time.Hour)},
				},
			}, nil
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/packages/track/CD123456", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("trackingID", "CD123456")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rr := httptest.NewRecorder()

	h.Track(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Package struct {
			TrackingID string `json:"tracking_id"`
		} `json:"package"`
		TrackingHistory []struct {
			Status   string `json:"status"`
			Location string `json:"location"`
		} `json:"tracking_history"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "CD123456", resp.Package.TrackingID)
	require.Len(t, resp.TrackingHistory, 2)
	require.Equal(t, "order_placed", resp.TrackingHistory[0].Status)
	require.Equal(t, "in_transit", resp.TrackingHistory[1].Status)
}

func TestPackageHandler_Track_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubBookingUsecase{
		trackFn: func(ctx context.Context, trackingID string) (booking.TrackResult, error) {
			return booking.TrackResult{}, apperr.ErrNotFound
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/packages/track/CD999999", nil)
	rr := httptest.NewRecorder()

	h.Track(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "package not found", resp["error"])
}

func TestPackageHandler_MyPackages(t *testing.T) {
	t.Parallel()

	uc := &stubBookingUsecase{
		listForUserFn: func(ctx context.Context, userID string) ([]domain.Package, error) {
			require.Equal(t, "u-1", userID)
			return []domain.Package{
				{ID: "pkg-2", TrackingID: "CD222222"},
				{ID: "pkg-1", TrackingID: "CD111111"},
			}, nil
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/packages/my-packages", nil), customer())
	rr := httptest.NewRecorder()

	h.MyPackages(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Packages []struct {
			TrackingID string `json:"tracking_id"`
		} `json:"packages"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Packages, 2)
	require.Equal(t, "CD222222", resp.Packages[0].TrackingID)
}

func TestPackageHandler_MyPackages_Empty(t *testing.T) {
	t.Parallel()

	uc := &stubBookingUsecase{
		listForUserFn: func(ctx context.Context, userID string) ([]domain.Package, error) {
			return []domain.Package{}, nil
		},
	}
	h := handlers.NewPackageHandler(uc, testLogger())

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/packages/my-packages", nil), customer())
	rr := httptest.NewRecorder()

	h.MyPackages(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"packages":[]}`, rr.Body.String())
}
