package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: remote department service
//   - session.go: token storage
//   - database.go: Postgres and Redis connections for the shared session backends
//   - http.go: dashboard HTTP server
//   - observability.go: logging and metrics
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, insecure cookies).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	API     APIConfig
	Session SessionConfig

	// Only consulted when the session backend needs them.
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// Validate reports configuration that cannot be corrected by Sanitize.
func (c *AppConfig) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Session.Validate()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
