package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SessionBackend selects where tokens are persisted.
type SessionBackend string

const (
	// SessionBackendMemory keeps tokens for the lifetime of the process.
	SessionBackendMemory SessionBackend = "memory"
	// SessionBackendFile writes one file per profile under StateDir.
	SessionBackendFile SessionBackend = "file"
	// SessionBackendRedis shares tokens between dashboard replicas through Redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendPostgres stores tokens in the dashboard_tokens table.
	SessionBackendPostgres SessionBackend = "postgres"
)

const stateDirName = "deptdash"

// SessionConfig controls token persistence.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"file"`

	// StateDir is where the file backend keeps tokens. Defaults to <user config dir>/deptdash.
	StateDir string `env:"SESSION_STATE_DIR"`

	// Profile is the profile used by the CLI when none is given on the command line.
	Profile string `env:"SESSION_PROFILE" envDefault:"default"`

	// RedisPrefix namespaces token keys for the redis backend.
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"deptdash:token:"`

	// EncryptionKey seals tokens at rest in the file, redis and postgres backends.
	// A 64-character hex string is used directly; any other value is hashed.
	EncryptionKey string `env:"SESSION_ENCRYPTION_KEY"`
}

// Sanitize normalises session configuration values.
func (c *SessionConfig) Sanitize() {
	c.Backend = SessionBackend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend == "" {
		c.Backend = SessionBackendFile
	}
	c.Profile = strings.TrimSpace(c.Profile)
	if c.Profile == "" {
		c.Profile = "default"
	}
	c.EncryptionKey = strings.TrimSpace(c.EncryptionKey)
	c.StateDir = strings.TrimSpace(c.StateDir)
	if c.StateDir == "" {
		c.StateDir = defaultStateDir()
	}
}

// Persistent reports whether the backend outlives the process.
func (c *SessionConfig) Persistent() bool {
	return c.Backend != SessionBackendMemory
}

// Validate rejects unknown backends.
func (c *SessionConfig) Validate() error {
	return ValidateSessionBackend(c.Backend)
}

// ValidateSessionBackend reports whether b names a supported backend.
func ValidateSessionBackend(b SessionBackend) error {
	switch b {
	case SessionBackendMemory, SessionBackendFile, SessionBackendRedis, SessionBackendPostgres:
		return nil
	default:
		return fmt.Errorf("invalid SESSION_BACKEND %q (valid: memory, file, redis, postgres)", b)
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, stateDirName)
	}
	return filepath.Join(os.TempDir(), stateDirName)
}
