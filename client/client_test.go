package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func authOKServer(t *testing.T, token string, user User) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login", "/api/auth/register":
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: token, User: user})
		default:
			http.NotFound(w, r)
		}
	}))
}

func errorServer(t *testing.T, status int, message string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	}))
}

func TestLogin_EstablishesSession(t *testing.T) {
	t.Parallel()

	user := User{ID: "u-1", Name: "Asha", Email: "asha@example.com", Role: "customer"}
	srv := authOKServer(t, "tok-1", user)
	defer srv.Close()

	c := New(srv.URL)

	sess, err := c.Login(context.Background(), "asha@example.com", "secret12")
	require.NoError(t, err)
	require.Equal(t, "tok-1", sess.Token)
	require.Equal(t, user, sess.User)

	got, ok := c.Session()
	require.True(t, ok)
	require.Equal(t, sess, got)
}

func TestRegister_EstablishesSession(t *testing.T) {
	t.Parallel()

	user := User{ID: "u-2", Name: "Ravi", Email: "ravi@example.com", Role: "customer"}
	srv := authOKServer(t, "tok-2", user)
	defer srv.Close()

	c := New(srv.URL)

	sess, err := c.Register(context.Background(), "Ravi", "ravi@example.com", "secret12", "customer")
	require.NoError(t, err)
	require.Equal(t, "tok-2", sess.Token)
}

func TestLogin_FailureLeavesPriorSessionUntouched(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			_ = json.NewEncoder(w).Encode(authResponse{
				AccessToken: "tok-first",
				User:        User{ID: "u-1", Email: "first@example.com"},
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	first, err := c.Login(context.Background(), "first@example.com", "secret12")
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "second@example.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "invalid email or password", err.Error())

	got, ok := c.Session()
	require.True(t, ok)
	require.Equal(t, first, got)
}

func TestLogin_DoubleSubmitIsRejected(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := c.Login(context.Background(), "a@example.com", "secret12")
		firstErr <- err
	}()

	require.Eventually(t, func() bool {
		_, err := c.Login(context.Background(), "b@example.com", "secret12")
		return err == ErrRequestInFlight
	}, time.Second, 5*time.Millisecond)

	close(release)
	wg.Wait()
	require.NoError(t, <-firstErr)
}

func TestLogout_ClearsSession(t *testing.T) {
	t.Parallel()

	srv := authOKServer(t, "tok", User{ID: "u-1"})
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	c.Logout()
	_, ok := c.Session()
	require.False(t, ok)

	// logging out twice is fine
	c.Logout()
}

func TestAuthedCall_WithoutSession(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:0")

	_, err := c.MyPackages(context.Background())
	require.ErrorIs(t, err, ErrNoSession)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestAuthedCall_Unauthorized_ClearsSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "expired"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired token"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	_, err = c.MyPackages(context.Background())
	require.True(t, IsUnauthorized(err))
	require.Equal(t, "invalid or expired token", err.Error())

	_, ok := c.Session()
	require.False(t, ok, "session must be cleared after a 401")
}

func TestMe_SendsBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok-me"})
			return
		}
		require.Equal(t, "Bearer tok-me", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(meResponse{User: User{ID: "u-1", Role: "admin"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.Equal(t, "admin", u.Role)
}

func TestCalculatePrice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
			return
		}
		var req QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "mumbai", req.SenderCity)
		require.Equal(t, "express", req.ServiceType)
		_ = json.NewEncoder(w).Encode(Quote{
			DistanceKM:     1400,
			WeightKG:       2,
			ServiceType:    "express",
			EstimatedPrice: 4485,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	quote, err := c.CalculatePrice(context.Background(), QuoteRequest{
		SenderCity:   "mumbai",
		ReceiverCity: "delhi",
		Weight:       2,
		ServiceType:  "express",
	})
	require.NoError(t, err)
	require.InDelta(t, 4485.0, quote.EstimatedPrice, 1e-9)
}

func TestCreatePackage_ReturnsServerPackage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Package{
			PackageID:  "p-1",
			TrackingID: "CD123456",
			Status:     "order_placed",
			Price:      4485,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	pkg, err := c.CreatePackage(context.Background(), CreatePackageRequest{ServiceType: "express"})
	require.NoError(t, err)
	require.Equal(t, "CD123456", pkg.TrackingID)
	require.InDelta(t, 4485.0, pkg.Price, 1e-9)
}

func TestTrack_SortsHistoryAscending(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/packages/track/CD123456", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "tracking is public")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TrackResult{
			Package: Package{TrackingID: "CD123456", Status: "in_transit"},
			TrackingHistory: []TrackingEvent{
				{Status: "in_transit", Timestamp: base.Add(2 * time.Hour)},
				{Status: "order_placed", Timestamp: base},
				{Status: "picked_up", Timestamp: base.Add(time.Hour)},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	res, err := c.Track(context.Background(), "CD123456")
	require.NoError(t, err)
	require.Len(t, res.TrackingHistory, 3)
	require.Equal(t, "order_placed", res.TrackingHistory[0].Status)
	require.Equal(t, "picked_up", res.TrackingHistory[1].Status)
	require.Equal(t, "in_transit", res.TrackingHistory[2].Status)
}

func TestTrack_NotFound(t *testing.T) {
	t.Parallel()

	srv := errorServer(t, http.StatusNotFound, "package not found")
	defer srv.Close()

	c := New(srv.URL)

	res, err := c.Track(context.Background(), "CD999999")
	require.True(t, IsNotFound(err))
	require.Equal(t, "package not found", err.Error())
	require.Zero(t, res)
}

func TestAdminStats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
			return
		}
		_ = json.NewEncoder(w).Encode(Stats{
			TotalPackages:     10,
			DeliveredPackages: 4,
			PendingPackages:   6,
			TotalUsers:        3,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "admin@example.com", "secret12")
	require.NoError(t, err)

	stats, err := c.AdminStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(10), stats.TotalPackages)
	require.Equal(t, int64(6), stats.PendingPackages)
}

func TestUpdateStatus_SurfacesConflictVerbatim(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
			return
		}
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "status cannot move backwards"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "agent@example.com", "secret12")
	require.NoError(t, err)

	err = c.UpdateStatus(context.Background(), UpdateStatusRequest{
		TrackingID: "CD123456",
		Status:     "order_placed",
		Location:   "Mumbai hub",
	})
	require.Error(t, err)
	require.Equal(t, "status cannot move backwards", err.Error())

	// a 409 is not session-invalidating
	_, ok := c.Session()
	require.True(t, ok)
}

func TestNetworkFailure_IsWrapped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.Track(context.Background(), "CD123456")
	require.Error(t, err)
	require.Contains(t, err.Error(), "/api/packages/track/CD123456")
}

func TestMyPackages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			_ = json.NewEncoder(w).Encode(authResponse{AccessToken: "tok"})
			return
		}
		_ = json.NewEncoder(w).Encode(packagesResponse{Packages: []Package{
			{TrackingID: "CD222222"},
			{TrackingID: "CD111111"},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "a@example.com", "secret12")
	require.NoError(t, err)

	list, err := c.MyPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "CD222222", list[0].TrackingID)
}
