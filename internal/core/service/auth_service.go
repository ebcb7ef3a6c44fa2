package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

const msgAlreadyRegistered = "User already registered."

// AuthDependencies groups the collaborators of AuthService.
type AuthDependencies struct {
	Users    ports.UserStore
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenIssuer
	Throttle ports.LoginThrottle
	Logger   zerolog.Logger
}

// AuthService implements registration, login and user administration.
type AuthService struct {
	users    ports.UserStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.Users,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		throttle: deps.Throttle,
		logger:   deps.Logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a non-admin account and issues its first token. The admin
// flag is never taken from the client.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	email := normalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", domain.NewValidationError(msgAlreadyRegistered)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:       primitive.NewObjectID(),
		Name:     in.Name,
		Email:    email,
		Password: hash,
		IsAdmin:  false,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", domain.NewValidationError(msgAlreadyRegistered)
		}
		return nil, "", fmt.Errorf("insert user: %w", err)
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, "", err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user registered")
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords fail identically with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	key := normalizeEmail(email)

	allowed, err := s.throttle.Attempt(ctx, key)
	if err != nil {
		return "", fmt.Errorf("login throttle: %w", err)
	}
	if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", s.rejectLogin()
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return "", s.rejectLogin()
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("reset login throttle")
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return "", err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, nil
}

func (s *AuthService) rejectLogin() error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	return domain.ErrInvalidCredentials
}

// Me returns the user a verified token was issued for.
func (s *AuthService) Me(ctx context.Context, subjectID string) (*domain.User, error) {
	return s.GetUser(ctx, subjectID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx, "name")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("user")
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("user")
	}
	removed, err := s.users.Delete(ctx, oid)
	if err != nil {
		return nil, userNotFound(err)
	}
	s.logger.Info().Str("user_id", oid.Hex()).Msg("user deleted")
	return removed, nil
}

// SetAdmin grants or revokes administrator rights by email. Only the
// operator CLI calls it; no HTTP route exposes it.
func (s *AuthService) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	user, err := s.users.SetAdmin(ctx, normalizeEmail(email), isAdmin)
	if err != nil {
		return nil, userNotFound(err)
	}
	s.logger.Info().Str("user_id", user.ID.Hex()).Bool("is_admin", isAdmin).Msg("admin flag changed")
	return user, nil
}

func userNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFound("user")
	}
	return fmt.Errorf("user store: %w", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
