package ports

import (
	"context"

	"github.com/vidly/rental-api/internal/core/domain"
)

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
}

// TokenVerifier decodes identity tokens. Any failure is domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// PasswordHasher is a one-way salted hash with a constant-time compare.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// LoginThrottle counts login attempts per key inside a fixed window.
type LoginThrottle interface {
	// Attempt counts one attempt for key and reports whether it is still
	// within the limit. Counting and checking happen in one step.
	Attempt(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService covers registration, login and user administration.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, subjectID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}
