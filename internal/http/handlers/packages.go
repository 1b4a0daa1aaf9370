package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/service/booking"
)

// PackageHandler serves booking and tracking endpoints.
type PackageHandler struct {
	uc     bookingUsecase
	logger logx.Logger
}

// NewPackageHandler wires a bookingUsecase into HTTP handlers.
func NewPackageHandler(uc bookingUsecase, logger logx.Logger) *PackageHandler {
	return &PackageHandler{uc: uc, logger: logger}
}

// CalculatePrice handles POST /api/packages/calculate-price.
func (h *PackageHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	quote, err := h.uc.Quote(r.Context(), req.SenderCity, req.ReceiverCity, req.Weight, req.ServiceType)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, quoteResponse{
			DistanceKM:     quote.DistanceKM,
			WeightKG:       quote.WeightKG,
			ServiceType:    quote.ServiceType,
			EstimatedPrice: quote.EstimatedPrice,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /api/packages/create.
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req createPackageRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	pkg, err := h.uc.Create(r.Context(), u.ID, booking.CreateInput{
		Sender:      req.Sender,
		Receiver:    req.Receiver,
		Details:     req.PackageDetails,
		ServiceType: req.ServiceType,
		PickupDate:  req.PickupDate,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, toPackageDTO(*pkg))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "could not allocate tracking id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Track handles GET /api/packages/track/{trackingID}. No auth required.
func (h *PackageHandler) Track(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingID")

	res, err := h.uc.Track(r.Context(), trackingID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, trackResponse{
			Package:         toPackageDTO(res.Package),
			TrackingHistory: toTrackingEventDTOs(res.History),
		})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "package not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// MyPackages handles GET /api/packages/my-packages.
func (h *PackageHandler) MyPackages(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	list, err := h.uc.ListForUser(r.Context(), u.ID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, packagesResponse{Packages: toPackageDTOs(list)})
}
