package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{Secret: secret, Issuer: "accessgate-test"})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{Secret: "   "}); err == nil {
		t.Fatal("expected construction to fail without a secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	id := Identity{UserID: "user-1", Email: "u@test.com", FullName: "Test User", Role: "admin"}

	pair, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if !pair.RefreshExpiresAt.After(pair.AccessExpiresAt) {
		t.Fatalf("refresh expiry %v should exceed access expiry %v", pair.RefreshExpiresAt, pair.AccessExpiresAt)
	}
	if got := pair.RefreshExpiresAt.Sub(pair.AccessExpiresAt); got != defaultRefreshTTL-defaultAccessTTL {
		t.Fatalf("unexpected TTL spread: %v", got)
	}

	decoded, err := svc.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if decoded != id {
		t.Fatalf("claim round trip mismatch: %+v != %+v", decoded, id)
	}
}

func TestIssueRequiresSubjectAndRole(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	for _, id := range []Identity{
		{Email: "u@test.com", Role: "user"},
		{UserID: "user-1", Email: "u@test.com"},
	} {
		if _, err := svc.Issue(id); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Issue(%+v): expected ErrInvalidToken, got %v", id, err)
		}
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	pair, err := svc.Issue(Identity{UserID: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(defaultAccessTTL + time.Minute) }
	if _, err := svc.Verify(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
	// The refresh token is still inside its 7 day window.
	if _, err := svc.Verify(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token should still verify: %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	other := newTestTokenService(t, "another-secret")

	pair, err := other.Issue(Identity{UserID: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsIncompleteClaims(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	// A payload missing the role claim must fail decode rather than produce a
	// partially populated identity.
	claims := Claims{
		Email: "u@test.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "accessgate-test",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	foreign, err := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "someone-else"})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	pair, err := foreign.Issue(Identity{UserID: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshReissuesEmbeddedClaim(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	id := Identity{UserID: "user-1", Email: "u@test.com", FullName: "Test User", Role: "user"}

	pair, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	renewed, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	decoded, err := svc.Verify(renewed.AccessToken)
	if err != nil {
		t.Fatalf("Verify renewed access token: %v", err)
	}
	if decoded != id {
		t.Fatalf("renewed claim mismatch: %+v != %+v", decoded, id)
	}
}

func TestRefreshCollapsesFailures(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	other := newTestTokenService(t, "another-secret")

	pair, err := svc.Issue(Identity{UserID: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": mustRefreshToken(t, other),
		"expired":      pair.RefreshToken,
	} {
		if name == "expired" {
			svc.now = func() time.Time { return time.Now().Add(defaultRefreshTTL + time.Hour) }
		}
		if _, err := svc.Refresh(token); !errors.Is(err, ErrInvalidRefreshToken) {
			t.Fatalf("%s: expected ErrInvalidRefreshToken, got %v", name, err)
		}
		svc.now = time.Now
	}
}

func mustRefreshToken(t *testing.T, svc *TokenService) string {
	t.Helper()
	pair, err := svc.Issue(Identity{UserID: "user-1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return pair.RefreshToken
}
