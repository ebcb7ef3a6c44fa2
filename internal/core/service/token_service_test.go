package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidly/rental-api/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, p := range []domain.Principal{
		{SubjectID: "5f1d7f3e9b1e8a3f2c4d6e8f", IsAdmin: false},
		{SubjectID: "5f1d7f3e9b1e8a3f2c4d6e90", IsAdmin: true},
	} {
		token, err := svc.Issue(p)
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		got, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if got != p {
			t.Fatalf("expected %+v, got %+v", p, got)
		}
	}
}

func TestTokenService_Issue_EmptySubject(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Issue(domain.Principal{}); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(domain.Principal{SubjectID: "abc"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	for i := range sig {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("byte %d: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenService("other", time.Hour).Issue(domain.Principal{SubjectID: "abc"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := NewTokenService("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(domain.Principal{SubjectID: "abc"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := tokenClaims{
		SubjectID: "abc",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{unsigned, hs512} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	}
}

func TestTokenService_MalformedInput(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{"", "hello", "a.b", "a.b.c", "...", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	claims := tokenClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenService("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
