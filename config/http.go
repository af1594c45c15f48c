package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for profile and CSRF cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks cookies Secure. Forced off in dev mode by the server wiring.
	CookieSecure bool `env:"APP_COOKIE_SECURE" envDefault:"true"`

	// LoginRatePerMinute limits login and register submissions per client address.
	LoginRatePerMinute int `env:"HTTP_LOGIN_RATE_PER_MIN" envDefault:"20"`

	// LoginBurst is the number of submissions allowed back to back.
	LoginBurst int `env:"HTTP_LOGIN_BURST" envDefault:"5"`

	// CompressionEnabled enables gzip compression for HTML and JSON responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
	// A zero rate disables limiting; negative values are treated the same way.
	if h.LoginRatePerMinute < 0 {
		h.LoginRatePerMinute = 0
	}
	if h.LoginBurst < 1 {
		h.LoginBurst = 1
	}
}
