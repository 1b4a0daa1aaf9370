package handlers

import (
	"errors"
	"net/http"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/service/trackingfeed"
)

// AdminHandler serves the operational endpoints: fleet-wide package listing,
// status updates and dashboard stats.
type AdminHandler struct {
	booking bookingUsecase
	feed    feedUsecase
	logger  logx.Logger
}

// NewAdminHandler wires the booking and feed usecases into HTTP handlers.
func NewAdminHandler(booking bookingUsecase, feed feedUsecase, logger logx.Logger) *AdminHandler {
	return &AdminHandler{booking: booking, feed: feed, logger: logger}
}

// AllPackages handles GET /api/admin/packages.
func (h *AdminHandler) AllPackages(w http.ResponseWriter, r *http.Request) {
	list, err := h.booking.ListAll(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, packagesResponse{Packages: toPackageDTOs(list)})
}

// UpdateStatus handles POST /api/admin/update-status. Status only moves
// forward through the delivery pipeline; anything else is a conflict.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.feed.Apply(r.Context(), trackingfeed.Update{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Location:   req.Location,
		Notes:      req.Notes,
		UpdatedBy:  u.ID,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "package not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "status cannot move backwards")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.booking.Stats(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statsResponse{
		TotalPackages:     stats.TotalPackages,
		DeliveredPackages: stats.DeliveredPackages,
		PendingPackages:   stats.PendingPackages,
		TotalUsers:        stats.TotalUsers,
	})
}
