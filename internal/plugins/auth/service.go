package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"

	"humblespace/internal/apperror"
	"humblespace/internal/config"
)

// tokenLabel is the constant message signed to derive the session token.
// The token's secrecy comes entirely from the HMAC key (the admin secret);
// the label just namespaces the derivation.
const tokenLabel = "admin-session"

// ErrSecretUnset is returned by Token when no admin secret is configured.
// Callers must treat it as "no trust decision possible", never as a valid
// empty token.
var ErrSecretUnset = errors.New("admin secret is not configured")

// Service holds the immutable admin credential configuration and implements
// token derivation, cookie issuance, and request verification. It is
// constructed once at startup from config; tests construct it directly with
// arbitrary fixtures. It has no mutable state and is safe for concurrent use.
type Service struct {
	cfg config.AdminConfig
}

// NewService creates the auth service from the admin configuration.
func NewService(cfg config.AdminConfig) *Service {
	return &Service{cfg: cfg}
}

// Token derives the admin session token: lowercase hex of
// HMAC-SHA256(key=admin secret, message=tokenLabel). Deterministic -- the
// same secret always yields the same token, which is what makes stateless
// verification possible. Fails when the secret is unset.
func (s *Service) Token() (string, error) {
	if s.cfg.Secret == "" {
		return "", ErrSecretUnset
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.Secret))
	mac.Write([]byte(tokenLabel))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// IsAuthenticated reports whether the given raw Cookie header carries a
// valid admin session token. Read-only: this is the sole authorization gate
// in front of every book mutation.
//
// The submitted value is compared against the re-derived expected token in
// constant time so a forger cannot recover the token byte-by-byte from
// response timing. The length pre-check runs in variable time, which is safe:
// the token length is fixed and public (hex SHA-256, 64 characters).
func (s *Service) IsAuthenticated(cookieHeader string) bool {
	token := ParseCookies(cookieHeader)[CookieName]
	if token == "" {
		return false
	}

	expected, err := s.Token()
	if err != nil {
		// No secret means no derivable trust -- fail closed.
		return false
	}

	if len(token) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}

// VerifyPassword checks a submitted login password against the configured
// admin password. Returns nil on match, otherwise an AppError:
//
//   - 400 when the submitted password is empty (user fixable),
//   - 500 when no admin password is configured (operator error -- must never
//     look like an authentication failure),
//   - 401 on mismatch, with a generic message.
//
// The comparison uses the same length-checked, constant-time discipline as
// token verification: the password is a secret and a naive == comparison
// would leak match progress through timing.
func (s *Service) VerifyPassword(supplied string) error {
	if supplied == "" {
		return apperror.NewBadRequest("Password is required")
	}
	if s.cfg.Password == "" {
		return apperror.NewMisconfigured(errors.New("ADMIN_PASSWORD is not set"))
	}

	if len(supplied) != len(s.cfg.Password) ||
		subtle.ConstantTimeCompare([]byte(supplied), []byte(s.cfg.Password)) != 1 {
		return apperror.NewUnauthorized("Invalid password")
	}
	return nil
}

// SessionCookie derives the token and wraps it in the session cookie.
// Fails when the admin secret is unset, so a misconfigured server can never
// hand out a cookie for the empty-secret token.
func (s *Service) SessionCookie() (*http.Cookie, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	return SessionCookie(token, s.cfg.SecureCookies), nil
}

// ClearCookie returns the cookie that logs the admin out.
func (s *Service) ClearCookie() *http.Cookie {
	return ClearCookie(s.cfg.SecureCookies)
}
