package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/logx"
)

const minPasswordLength = 6

// Session is an established authenticated session: the signed access token
// and the profile it belongs to.
type Session struct {
	Token string
	User  domain.User
}

// Service coordinates registration and login.
type Service struct {
	repo             userRepository
	hasher           passwordHasher
	tokens           tokenIssuer
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures an accounts Service.
func NewService(repo userRepository, hasher passwordHasher, tokens tokenIssuer, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		hasher:           hasher,
		tokens:           tokens,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Register creates a user and returns an established session for it.
// An empty role registers a customer; the role set is closed.
func (s *Service) Register(ctx context.Context, name, email, password string, role domain.Role) (Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || !domain.ValidateEmail(email) || len(password) < minPasswordLength {
		return Session{}, apperr.ErrInvalid
	}
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return Session{}, apperr.ErrInvalid
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
		Active:       true,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, user); err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return Session{}, err
	}

	s.logger.Info("user registered",
		logx.String("event", "user_registered"),
		logx.String("user_id", user.ID),
		logx.String("role", string(user.Role)),
	)

	return Session{Token: token, User: *user}, nil
}

// Login verifies credentials and returns an established session. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if user == nil || !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		return Session{}, apperr.ErrUnauthorized
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: *user}, nil
}

// Lookup resolves a token subject to its user. Used by the auth middleware;
// a missing or deactivated user maps to apperr.ErrUnauthorized.
func (s *Service) Lookup(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperr.ErrUnauthorized
	}
	return user, nil
}
