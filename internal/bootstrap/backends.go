package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/deptdash/config"
	"github.com/target/deptdash/internal/adapters/filestore"
	"github.com/target/deptdash/internal/adapters/memory"
	"github.com/target/deptdash/internal/adapters/postgres"
	"github.com/target/deptdash/internal/adapters/sealed"
	redisstore "github.com/target/deptdash/internal/adapters/redis"
	"github.com/target/deptdash/internal/ports"
)

// TokenBackendDeps carries what NewTokenBackend needs for every backend kind.
// DB and Redis may be pre-connected (tests); otherwise they are dialed from Config.
type TokenBackendDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// TokenBackend is a constructed backend plus whatever must be released on shutdown.
type TokenBackend struct {
	Backend ports.TokenBackend
	Kind    config.SessionBackend

	closers []func() error
}

// Close releases connections opened by NewTokenBackend.
func (b *TokenBackend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewTokenBackend builds the token backend selected by SESSION_BACKEND.
func NewTokenBackend(ctx context.Context, deps TokenBackendDeps) (*TokenBackend, error) {
	if deps.Config == nil {
		return nil, errors.New("token backend: config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sess := deps.Config.Session
	out := &TokenBackend{Kind: sess.Backend}

	switch sess.Backend {
	case config.SessionBackendMemory:
		out.Backend = memory.NewTokenStore()

	case config.SessionBackendFile:
		fs, err := filestore.NewTokenStore(sess.StateDir)
		if err != nil {
			return nil, fmt.Errorf("token backend: %w", err)
		}
		out.Backend = fs

	case config.SessionBackendRedis:
		client := deps.Redis
		if client == nil {
			var err error
			client, err = ConnectRedis(ctx, DatabaseConfig{RedisConfig: deps.Config.Redis, Logger: logger})
			if err != nil {
				return nil, fmt.Errorf("token backend: %w", err)
			}
			out.closers = append(out.closers, client.Close)
		}
		out.Backend = redisstore.NewTokenStoreWithPrefix(client, sess.RedisPrefix)

	case config.SessionBackendPostgres:
		db := deps.DB
		if db == nil {
			var err error
			db, err = ConnectDB(ctx, DatabaseConfig{DBConfig: deps.Config.Postgres, Logger: logger})
			if err != nil {
				return nil, fmt.Errorf("token backend: %w", err)
			}
			out.closers = append(out.closers, db.Close)
		}
		if deps.Config.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, out.Close())
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		out.Backend = postgres.NewTokenStore(db)

	default:
		return nil, config.ValidateSessionBackend(sess.Backend)
	}

	if sess.Persistent() {
		enc, err := NewTokenEncryptor(sess.EncryptionKey, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("token backend: %w", err), out.Close())
		}
		if enc != nil {
			out.Backend = sealed.NewTokenStore(out.Backend, enc)
		}
	}

	logger.InfoContext(ctx, "token backend ready",
		"backend", string(sess.Backend),
		"encrypted", sess.Persistent() && sess.EncryptionKey != "")
	return out, nil
}
