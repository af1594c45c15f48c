package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups configuration that controls metrics and logging.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Metrics.Sanitize()
}

// Level maps LogLevel to a slog level, falling back to info.
func (c *ObservabilityConfig) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ObservabilityMetricsConfig controls the Prometheus endpoint and the optional StatsD sink.
type ObservabilityMetricsConfig struct {
	Enabled bool   `env:"OBSERVABILITY_METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"OBSERVABILITY_METRICS_PATH"    envDefault:"/metrics"`

	// StatsdAddress enables the StatsD sink when set (host:port, UDP).
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:""`
	StatsdPrefix  string `env:"OBSERVABILITY_METRICS_STATSD_PREFIX"  envDefault:"deptdash"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	c.StatsdPrefix = strings.TrimSpace(c.StatsdPrefix)
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" {
		c.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/" + c.Path
	}
}

// StatsdEnabled reports whether samples should also go to a StatsD agent.
func (c *ObservabilityMetricsConfig) StatsdEnabled() bool {
	return c.StatsdAddress != ""
}

// IsEnabled returns true when the metrics endpoint should be mounted.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled
}
