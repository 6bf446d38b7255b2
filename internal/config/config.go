package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Env controls deployment-mode behavior such as session cookie
	// attributes. "production" enables Secure/SameSite=None cookies.
	Env string `mapstructure:"env" validate:"required,oneof=development production"`
}

// DatabaseConfig contains all document-store configuration settings.
type DatabaseConfig struct {
	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" validate:"required"`

	// Name is the database holding the products collection.
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
