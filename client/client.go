// Package client is a Go client for the courier delivery API. It holds the
// authentication session for the life of the process; Login and Register
// replace it atomically on success and leave it untouched on failure, and a
// 401 on any authenticated call clears it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the courier delivery API. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu       sync.Mutex
	session  *Session
	authBusy bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates with email and password. On success the session is
// replaced; on failure the prior session, if any, stays active.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	return c.authenticate(ctx, "/api/auth/login", payload)
}

// Register creates an account and establishes a session for it.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (Session, error) {
	payload := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{Name: name, Email: email, Password: password, Role: role}
	return c.authenticate(ctx, "/api/auth/register", payload)
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (Session, error) {
	if !c.beginAuth() {
		return Session{}, ErrRequestInFlight
	}
	defer c.endAuth()

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, payload, &resp, false); err != nil {
		return Session{}, err
	}

	sess := Session{Token: resp.AccessToken, User: resp.User}
	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()
	return sess, nil
}

func (c *Client) beginAuth() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authBusy {
		return false
	}
	c.authBusy = true
	return true
}

func (c *Client) endAuth() {
	c.mu.Lock()
	c.authBusy = false
	c.mu.Unlock()
}

// Logout clears the session unconditionally.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Session returns the current session, if one is established.
func (c *Client) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Me fetches the profile behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp, true); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// CalculatePrice asks the server for a price estimate.
func (c *Client) CalculatePrice(ctx context.Context, req QuoteRequest) (Quote, error) {
	var quote Quote
	if err := c.do(ctx, http.MethodPost, "/api/packages/calculate-price", req, &quote, true); err != nil {
		return Quote{}, err
	}
	return quote, nil
}

// CreatePackage books a shipment. The returned price and tracking ID are the
// server's and override any prior estimate.
func (c *Client) CreatePackage(ctx context.Context, req CreatePackageRequest) (Package, error) {
	var pkg Package
	if err := c.do(ctx, http.MethodPost, "/api/packages/create", req, &pkg, true); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// Track fetches the public tracking view for a tracking ID. The returned
// history is sorted by timestamp ascending.
func (c *Client) Track(ctx context.Context, trackingID string) (TrackResult, error) {
	path := "/api/packages/track/" + url.PathEscape(strings.TrimSpace(trackingID))

	var res TrackResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res, false); err != nil {
		return TrackResult{}, err
	}
	sort.SliceStable(res.TrackingHistory, func(i, j int) bool {
		return res.TrackingHistory[i].Timestamp.Before(res.TrackingHistory[j].Timestamp)
	})
	return res, nil
}

// MyPackages lists the caller's shipments, newest first.
func (c *Client) MyPackages(ctx context.Context) ([]Package, error) {
	var resp packagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/packages/my-packages", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

// AdminPackages lists every shipment. Requires admin or delivery agent.
func (c *Client) AdminPackages(ctx context.Context) ([]Package, error) {
	var resp packagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/packages", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

// AdminStats fetches the aggregate counters. Requires admin.
func (c *Client) AdminStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats, true); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// UpdateStatus moves a package forward through the delivery pipeline.
// Requires admin or delivery agent.
func (c *Client) UpdateStatus(ctx context.Context, req UpdateStatusRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/update-status", req, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var token string
	if authed {
		token = c.token()
		if token == "" {
			return ErrNoSession
		}
	}

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
		apiErr.Message = errBody.Error
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
	}
	return apiErr
}
