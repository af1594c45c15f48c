package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	"github.com/target/deptdash/internal/observability/metrics"
	"github.com/target/deptdash/internal/ports"
)

// Observability groups optional logging and metrics dependencies.
type Observability struct {
	Logger  *slog.Logger
	Metrics metrics.Sink
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Session       ports.TokenStore
	API           ports.DepartmentAPI
	Observability Observability
}

// AuthService coordinates login, registration and logout against one profile's session.
type AuthService struct {
	session  ports.TokenStore
	api      ports.DepartmentAPI
	logger   *slog.Logger
	metrics  metrics.Sink
	validate *inputValidator
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Session == nil {
		panic("AuthService: Session is required")
	}
	if opts.API == nil {
		panic("AuthService: API is required")
	}
	logger := opts.Observability.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		session:  opts.Session,
		api:      opts.API,
		logger:   logger.With("component", "auth_service"),
		metrics:  opts.Observability.Metrics,
		validate: newInputValidator(),
	}
}

// Login exchanges credentials for a token and persists it. Nothing is stored when login fails.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) error {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := s.validate.Struct(creds); err != nil {
		return err
	}

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}

	if err := s.session.SetToken(ctx, token); err != nil {
		return fmt.Errorf("persist login: %w", err)
	}
	metrics.EmitSessionEvent(s.metrics, metrics.SessionLogin)
	s.logger.InfoContext(ctx, "login succeeded")
	return nil
}

// Register creates an account. The session is left untouched; users log in afterwards.
func (s *AuthService) Register(ctx context.Context, reg domainauth.Registration) (domainauth.RegistrationResult, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := s.validate.Struct(reg); err != nil {
		return domainauth.RegistrationResult{}, err
	}

	return s.api.Register(ctx, reg)
}

// Logout clears the session token.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.ClearToken(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.EmitSessionEvent(s.metrics, metrics.SessionLogout)
	return nil
}

// Authenticated reports whether a token is currently held.
func (s *AuthService) Authenticated(ctx context.Context) bool {
	return s.session.GetToken(ctx) != ""
}
