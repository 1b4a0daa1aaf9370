package accounts

import (
	"context"

	"courier-delivery-service/internal/domain"
)

// userRepository defines storage operations required by the accounts layer.
type userRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// passwordHasher hashes and verifies passwords.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// tokenIssuer signs access tokens for an authenticated email.
type tokenIssuer interface {
	Issue(email string) (string, error)
}
