package ports

import "net/http"

// Token validation failure reasons. Validate never returns an error for an
// unacceptable token; it tags the result so the authentication gate can pick
// a precise response (and log the reason without exposing it).
const (
	TokenReasonMalformed      = "malformed"
	TokenReasonExpired        = "expired"
	TokenReasonBadSignature   = "bad-signature"
	TokenReasonMissingSubject = "missing-subject"
)

// TokenResult is the tagged outcome of validating a raw token.
type TokenResult struct {
	Valid   bool
	Subject string
	Reason  string
}

// TokenService issues and validates signed, time-limited identity tokens.
type TokenService interface {
	// Generate produces a signed token whose subject is the given user id.
	Generate(subjectUserID string) (string, error)
	// Validate verifies signature and expiry. It never returns an error;
	// an unacceptable token yields Valid=false with a Reason.
	Validate(raw string) TokenResult
	// ExtractFromRequest reads the token from the X-Access-Token header or,
	// failing that, an "Authorization: Bearer <token>" header. ok is false
	// when neither header is present; absence is not an error.
	ExtractFromRequest(h http.Header) (token string, ok bool)
}
