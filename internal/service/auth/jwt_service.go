package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT asserting the given identity.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Identity is the caller-supplied identity signed into a session token.
// The session endpoint performs no lookup against an account store; the
// email is the only claim the rest of the system relies on.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Claims represents the custom claims structure for session tokens.
// It extends standard JWT registered claims with the asserted identity.
type Claims struct {
	// Email is the identity the token was issued for. Ownership checks
	// compare this against requested resource owners.
	Email string `json:"email"`

	// DisplayName and PhotoURL are carried for presentation only.
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
