package config

// Environment names recognized by the application. The environment controls
// error-response verbosity: production suppresses stack traces and replaces
// non-operational error messages with a generic phrase.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// Access and refresh tokens are signed with independent secrets so that
// leaking one cannot be used to mint the other kind.
type AuthConfig struct {
	AccessTokenSecret           string `mapstructure:"access_token_secret"            validate:"required,min=32"`
	RefreshTokenSecret          string `mapstructure:"refresh_token_secret"           validate:"required,min=32,nefield=AccessTokenSecret"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	Issuer                      string `mapstructure:"issuer"                         validate:"required"`
	Audience                    string `mapstructure:"audience"                       validate:"required"`
}

// RateLimitConfig contains settings for the fixed-window request limiter.
// A zero value disables the limiter.
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds" validate:"omitempty,gt=0"`
	MaxRequests   int `mapstructure:"max_requests"   validate:"omitempty,gt=0"`
}

// IsProduction reports whether the server runs in a production-like deployment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}
