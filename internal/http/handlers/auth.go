package handlers

import (
	"errors"
	"net/http"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/logx"
)

// AuthHandler serves registration and login endpoints.
type AuthHandler struct {
	uc     accountsUsecase
	logger logx.Logger
}

// NewAuthHandler wires an accountsUsecase into HTTP handlers.
func NewAuthHandler(uc accountsUsecase, logger logx.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	sess, err := h.uc.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, authResponse{
			AccessToken: sess.Token,
			User:        toUserDTO(sess.User),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "email already registered")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	sess, err := h.uc.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, authResponse{
			AccessToken: sess.Token,
			User:        toUserDTO(sess.User),
		})
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "invalid email or password")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Me handles GET /api/auth/me and returns the token's user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]userDTO{"user": toUserDTO(*u)})
}
