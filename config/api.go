package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Authorization header styles understood by the department client.
const (
	AuthSchemeBearer = "bearer"
	AuthSchemeRaw    = "raw"
)

// APIConfig describes how to reach the remote department service.
type APIConfig struct {
	// BaseURL is the root every endpoint path is appended to.
	BaseURL string `env:"API_BASE_URL" envDefault:"https://employee-react.onrender.com/emp"`

	// Timeout bounds each request. Zero selects the client default.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// AuthScheme selects "bearer" (Authorization: Bearer <token>) or
	// "raw" (Authorization: <token>) for servers that expect the bare token.
	AuthScheme string `env:"API_AUTH_SCHEME" envDefault:"bearer"`
}

// Sanitize normalises API configuration values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.AuthScheme = strings.ToLower(strings.TrimSpace(c.AuthScheme))
	if c.AuthScheme == "" {
		c.AuthScheme = AuthSchemeBearer
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// Validate checks the base URL and auth scheme.
func (c *APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	switch c.AuthScheme {
	case AuthSchemeBearer, AuthSchemeRaw:
		return nil
	default:
		return fmt.Errorf("API_AUTH_SCHEME must be %q or %q, got %q", AuthSchemeBearer, AuthSchemeRaw, c.AuthScheme)
	}
}
