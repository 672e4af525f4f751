package auth

import (
	"net/http"
	"strings"
)

// CookieName is the HTTP cookie that carries the admin session token.
const CookieName = "admin_token"

// cookieMaxAge is the session cookie lifetime: 7 days in seconds.
const cookieMaxAge = 7 * 24 * 60 * 60

// ParseCookies parses a raw Cookie header into a name/value map. The header
// is split on ";", each pair trimmed, then split on the FIRST "=" only, so
// values may themselves contain "=" (base64 payloads, etc.).
// A missing or empty header yields an empty map. Duplicate names: last wins.
func ParseCookies(rawHeader string) map[string]string {
	cookies := make(map[string]string)
	if rawHeader == "" {
		return cookies
	}
	for _, pair := range strings.Split(rawHeader, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		cookies[name] = value
	}
	return cookies
}

// SessionCookie builds the Set-Cookie payload carrying the session token.
// HttpOnly keeps it away from scripts, SameSite=Strict stops cross-site
// requests from carrying it, and Secure is applied only when the deployment
// serves HTTPS -- hardcoding it would break plain-HTTP development setups.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge,
	}
}

// ClearCookie builds the Set-Cookie payload that drops the session cookie.
// net/http serializes a negative MaxAge as "Max-Age=0", which makes the
// browser discard the cookie immediately.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	}
}
