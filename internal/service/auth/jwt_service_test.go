package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrafz/foodshare-api/internal/config"
)

// testJWTConfig returns a standard configuration for JWT authentication
// suitable for testing.
func testJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long", // At least 32 chars
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		svc, err := NewJWTService(testJWTConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.JWTSecret = "tooshort"
		svc, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateToken(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		identity := Identity{
			Email:       "alice@example.com",
			DisplayName: "Alice",
			PhotoURL:    "https://example.com/alice.png",
		}

		token, err := svc.GenerateToken(context.Background(), identity)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, identity.Email, claims.Email)
		assert.Equal(t, identity.DisplayName, claims.DisplayName)
		assert.Equal(t, identity.PhotoURL, claims.PhotoURL)
		assert.Equal(t, identity.Email, claims.Subject)
		assert.NotEmpty(t, claims.ID, "token should carry a unique JTI")
	})

	t.Run("missing email rejected", func(t *testing.T) {
		_, err := svc.GenerateToken(context.Background(), Identity{DisplayName: "Nameless"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("expiry follows configured lifetime", func(t *testing.T) {
		issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		impl := svc.(*hmacJWTService)
		origTime := impl.timeFunc
		impl.timeFunc = func() time.Time { return issued }
		defer func() { impl.timeFunc = origTime }()

		token, err := svc.GenerateToken(context.Background(), Identity{Email: "bob@example.com"})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	})
}

func TestValidateToken(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		impl := svc.(*hmacJWTService)
		origTime := impl.timeFunc

		// Issue in the past, validate in the present, beyond lifetime + skew.
		impl.timeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := svc.GenerateToken(context.Background(), Identity{Email: "carol@example.com"})
		require.NoError(t, err)

		impl.timeFunc = origTime
		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherCfg := testJWTConfig()
		otherCfg.JWTSecret = "a-completely-different-32-char-secret!!"
		otherSvc, err := NewJWTService(otherCfg)
		require.NoError(t, err)

		token, err := otherSvc.GenerateToken(context.Background(), Identity{Email: "dave@example.com"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := svc.GenerateToken(context.Background(), Identity{Email: "eve@example.com"})
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "xxxx"
		_, err = svc.ValidateToken(context.Background(), tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
