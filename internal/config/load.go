package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load,
// e.g. FOODSHARE_SERVER_PORT maps to the server.port key.
const envPrefix = "FOODSHARE"

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Environment variables use the FOODSHARE_ prefix
// with underscores separating nested keys. Returns a populated Config or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for optional settings.
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.name", "donationDB")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for AutomaticEnv
	// to surface them during Unmarshal.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.env",
		"database.uri",
		"database.name",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
