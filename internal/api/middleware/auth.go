package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashrafz/foodshare-api/internal/api/shared"
	"github.com/ashrafz/foodshare-api/internal/redact"
	"github.com/ashrafz/foodshare-api/internal/service/auth"
)

// AuthMiddleware provides cookie-based JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the JWT session token from the "token" cookie and
// adds the caller's claims to the request context. A missing cookie rejects
// immediately; an invalid or expired token rejects after verification.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Session cookie required")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Session expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid session token")
			default:
				slog.Error("failed to validate session token", "error", redact.Error(err))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the authenticated session claims from the request
// context. Returns the claims and a boolean indicating if they were found.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok
}
