package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidly/rental-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the payload carried by an identity token.
type tokenClaims struct {
	SubjectID string `json:"_id"`
	IsAdmin   bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with secret. Tokens expire
// after ttl; a non-positive ttl falls back to 24h.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for p.
func (s *TokenService) Issue(p domain.Principal) (string, error) {
	if p.SubjectID == "" {
		return "", errors.New("issue token: empty subject")
	}
	now := s.now()
	claims := tokenClaims{
		SubjectID: p.SubjectID,
		IsAdmin:   p.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the principal.
// Every failure, including garbage input, matches domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Principal, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SubjectID == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{SubjectID: claims.SubjectID, IsAdmin: claims.IsAdmin}, nil
}
