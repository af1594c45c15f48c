package ports

// Package ports defines interfaces (hexagonal ports) for session and department behavior.
// Implementations live in internal/adapters and internal/session; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	"github.com/target/deptdash/internal/domain/model"
)

// TokenBackend persists one opaque token per profile.
// Load returns ("", nil) when no token is stored for the profile.
type TokenBackend interface {
	Load(ctx context.Context, profile string) (string, error)
	Save(ctx context.Context, profile, token string) error
	Delete(ctx context.Context, profile string) error
}

// TokenSource hands out the current token for authenticated calls.
type TokenSource interface {
	// RequireToken returns the current token or a NotAuthenticated error.
	RequireToken(ctx context.Context) (string, error)
}

// TokenStore is the full session store contract used by the service layer.
type TokenStore interface {
	TokenSource
	SetToken(ctx context.Context, token string) error
	GetToken(ctx context.Context) string
	ClearToken(ctx context.Context) error
}

// DepartmentAPI is the remote department service as seen by the service layer.
type DepartmentAPI interface {
	Login(ctx context.Context, creds domainauth.Credentials) (string, error)
	Register(ctx context.Context, reg domainauth.Registration) (domainauth.RegistrationResult, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	AddDepartment(ctx context.Context, name, description string) (model.Department, error)
	DeleteDepartment(ctx context.Context, id string) error
	GetDepartment(ctx context.Context, id string) (model.Department, error)
}

// DepartmentAPIFactory binds a DepartmentAPI to a token source.
type DepartmentAPIFactory func(tokens TokenSource) DepartmentAPI
