package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightcart/storefront-api/internal/core/ports"
)

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestTokenService_GenerateValidate(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	raw, err := svc.Generate("user-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	res := svc.Validate(raw)
	if !res.Valid {
		t.Fatalf("expected valid token, got reason %q", res.Reason)
	}
	if res.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", res.Subject)
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	raw := signToken(t, "secret", jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonExpired {
		t.Fatalf("expected expired, got %+v", res)
	}
}

func TestTokenService_Validate_ExpiredWinsOverBadSignature(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	// Expired and signed with the wrong key: expiry must be reported.
	raw := signToken(t, "other-secret", jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonExpired {
		t.Fatalf("expected expired, got %+v", res)
	}
}

func TestTokenService_Validate_MissingExpiry(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	raw := signToken(t, "secret", jwt.RegisteredClaims{Subject: "user-1"})
	if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonExpired {
		t.Fatalf("expected expired for missing exp, got %+v", res)
	}
}

func TestTokenService_Validate_BadSignature(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	raw := signToken(t, "other-secret", jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonBadSignature {
		t.Fatalf("expected bad-signature, got %+v", res)
	}
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonMalformed {
			t.Fatalf("expected malformed for %q, got %+v", raw, res)
		}
	}
}

func TestTokenService_Validate_MissingSubject(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	raw := signToken(t, "secret", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if res := svc.Validate(raw); res.Valid || res.Reason != ports.TokenReasonMissingSubject {
		t.Fatalf("expected missing-subject, got %+v", res)
	}
}

func TestTokenService_ExtractFromRequest(t *testing.T) {
	svc, _ := NewTokenService("secret", time.Hour)

	h := http.Header{}
	if _, ok := svc.ExtractFromRequest(h); ok {
		t.Fatalf("expected no token on empty headers")
	}

	h.Set("Authorization", "Bearer abc")
	if raw, ok := svc.ExtractFromRequest(h); !ok || raw != "abc" {
		t.Fatalf("expected bearer token abc, got %q ok=%v", raw, ok)
	}

	// The dedicated header wins over Authorization.
	h.Set("X-Access-Token", "xyz")
	if raw, ok := svc.ExtractFromRequest(h); !ok || raw != "xyz" {
		t.Fatalf("expected header token xyz, got %q ok=%v", raw, ok)
	}
}
