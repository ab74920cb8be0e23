package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightcart/storefront-api/internal/core/ports"
)

const (
	accessTokenHeader = "X-Access-Token"
	bearerPrefix      = "Bearer "
	defaultTokenTTL   = time.Hour
)

// TokenService issues and validates HS256-signed identity tokens carrying
// the user id as the subject claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService fails when no signing secret is configured: that is a
// fatal misconfiguration, not a per-request condition.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Generate produces a signed token for the given subject with issued-at and
// expiry claims.
func (s *TokenService) Generate(subjectUserID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectUserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate verifies signature and expiry, returning a tagged result rather
// than an error so the authentication gate can distinguish absent, invalid,
// and valid tokens precisely.
func (s *TokenService) Validate(raw string) ports.TokenResult {
	// Expiry is checked on the unverified claims first: an expired token
	// reports "expired" no matter what its signature looks like. There are
	// no non-expiring tokens, so a missing exp claim counts as expired.
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return ports.TokenResult{Reason: ports.TokenReasonMalformed}
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return ports.TokenResult{Reason: ports.TokenReasonExpired}
	}

	tkn, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	switch {
	case err == nil && tkn.Valid:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ports.TokenResult{Reason: ports.TokenReasonBadSignature}
	default:
		return ports.TokenResult{Reason: ports.TokenReasonMalformed}
	}

	if claims.Subject == "" {
		return ports.TokenResult{Reason: ports.TokenReasonMissingSubject}
	}
	return ports.TokenResult{Valid: true, Subject: claims.Subject}
}

// ExtractFromRequest reads the token from the dedicated header first, then
// from a standard bearer authorization header. A missing token is reported
// as ok=false, distinct from a present-but-invalid one.
func (s *TokenService) ExtractFromRequest(h http.Header) (string, bool) {
	if t := h.Get(accessTokenHeader); t != "" {
		return t, true
	}
	auth := h.Get("Authorization")
	if auth == "" {
		return "", false
	}
	// Strip the exact "Bearer " prefix (case-sensitive, single space).
	return strings.TrimPrefix(auth, bearerPrefix), true
}
