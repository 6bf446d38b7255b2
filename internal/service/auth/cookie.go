package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionCookie builds the http-only cookie carrying a signed session token.
// In production the cookie is sent cross-site (Secure + SameSite=None) so a
// separately hosted frontend can use it; elsewhere it stays same-site so
// local development works without TLS.
func SessionCookie(token string, lifetime time.Duration, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// ClearSessionCookie builds a cookie that expires the session cookie with
// attributes matching the ones it was set with.
func ClearSessionCookie(production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
