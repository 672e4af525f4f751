// Package auth implements the admin authentication core for humblespace.
//
// There is exactly one account. The session token is not random: it is an
// HMAC-SHA256 digest of a constant label keyed by the admin secret, so the
// server never stores sessions -- a presented cookie is valid iff it equals
// the re-derived token. Rotating ADMIN_SECRET therefore revokes every
// outstanding cookie at once.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

// LoginRequest holds the credential submitted to POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

// Status is the response body of GET /api/auth/me. The client keeps a local
// isAdmin flag seeded from this endpoint, but that flag only gates UI --
// every mutating request is re-verified server-side regardless.
type Status struct {
	Authenticated bool `json:"authenticated"`
}
