package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"courier-delivery-service/internal/apperr"
)

// TokenManager issues and parses HS256 access tokens. The subject claim
// carries the user's email.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Issue signs a new access token for the given email.
func (m *TokenManager) Issue(email string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Parse validates a token and returns its subject email. Any failure, an
// expired token included, maps to apperr.ErrUnauthorized.
func (m *TokenManager) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", apperr.ErrUnauthorized
	}
	return claims.Subject, nil
}
