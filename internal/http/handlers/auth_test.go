package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/http/handlers"
	"courier-delivery-service/internal/http/middleware"
	"courier-delivery-service/internal/service/accounts"
)

type stubAccountsUsecase struct {
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error)
	loginFn    func(ctx context.Context, email, password string) (accounts.Session, error)
}

func (s *stubAccountsUsecase) Register(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAccountsUsecase) Login(ctx context.Context, email, password string) (accounts.Session, error) {
	return s.loginFn(ctx, email, password)
}

func TestAuthHandler_Register_Created(t *testing.T) {
	t.Parallel()

	uc := &stubAccountsUsecase{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error) {
			require.Equal(t, "Asha", name)
			require.Equal(t, "asha@example.com", email)
			return accounts.Session{
				Token: "tok-1",
				User:  domain.User{ID: "u-1", Name: name, Email: email, Role: domain.RoleCustomer},
			}, nil
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"name":"Asha","email":"asha@example.com","password":"secret1","role":"customer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "tok-1", resp.AccessToken)
	require.Equal(t, "u-1", resp.User.ID)
	require.Equal(t, "asha@example.com", resp.User.Email)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	uc := &stubAccountsUsecase{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error) {
			return accounts.Session{}, apperr.ErrConflict
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"name":"Asha","email":"asha@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "email already registered", resp["error"])
}

func TestAuthHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	uc := &stubAccountsUsecase{
		registerFn: func(ctx context.Context, name, email, password string, role domain.Role) (accounts.Session, error) {
			t.Fatal("usecase should not be called on bad json")
			return accounts.Session{}, nil
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	h.Register(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_Login_OK(t *testing.T) {
	t.Parallel()

	uc := &stubAccountsUsecase{
		loginFn: func(ctx context.Context, email, password string) (accounts.Session, error) {
			return accounts.Session{
				Token: "tok-2",
				User:  domain.User{ID: "u-1", Email: email, Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"email":"root@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "tok-2", resp.AccessToken)
	require.Equal(t, "admin", resp.User.Role)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	uc := &stubAccountsUsecase{
		loginFn: func(ctx context.Context, email, password string) (accounts.Session, error) {
			return accounts.Session{}, apperr.ErrUnauthorized
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"email":"root@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "invalid email or password", resp["error"])
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	h := handlers.NewAuthHandler(&stubAccountsUsecase{}, testLogger())

	u := &domain.User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), u))
	rr := httptest.NewRecorder()

	h.Me(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "u-1", resp.User.ID)
	require.Equal(t, "asha@example.com", resp.User.Email)
}

func TestAuthHandler_Me_NoUser(t *testing.T) {
	t.Parallel()

	h := handlers.NewAuthHandler(&stubAccountsUsecase{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()

	h.Me(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
