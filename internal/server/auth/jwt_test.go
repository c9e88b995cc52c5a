package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestJWT_IssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewJWTService([]byte("super-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotUserID, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if gotUserID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, "user-123")
	}
}

func TestJWT_Verify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewJWTService([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestJWT_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTService([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewJWTService([]byte("wrong-secret"), time.Hour).Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestJWT_Verify_MalformedString(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not.a.jwt", "abc", strings.Repeat("x", 300)} {
		if _, err := NewJWTService([]byte("k"), time.Hour).Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("token %q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestJWT_Verify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u3",
	})
	tok, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTService(secret, time.Hour).Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for HS512, got %v", err)
	}
}

func TestJWT_Verify_RequiresExpiryAndUser(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	svc := NewJWTService(secret, time.Hour)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u4"}).SignedString(secret)
	if _, err := svc.Verify(noExp); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected error for token without exp, got %v", err)
	}

	noUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	if _, err := svc.Verify(noUser); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected error for token without user, got %v", err)
	}
}

func TestJWT_Verify_AfterValidityWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	t.Cleanup(func() { now = orig })

	svc := NewJWTService([]byte("secret"), time.Hour)

	now = func() time.Time { return base }
	tok, err := svc.Issue("ann")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	now = func() time.Time { return base.Add(59 * time.Minute) }
	if got, err := svc.Verify(tok); err != nil || got != "ann" {
		t.Fatalf("expected valid token before expiry, got %q, %v", got, err)
	}

	now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, err := svc.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken after expiry, got %v", err)
	}
}
