package service

import (
	"log/slog"

	"github.com/target/deptdash/internal/ports"
	"github.com/target/deptdash/internal/session"
)

// WorkspacesOptions groups dependencies for Workspaces.
type WorkspacesOptions struct {
	Backend       ports.TokenBackend
	NewAPI        ports.DepartmentAPIFactory
	Observability Observability
}

// Workspaces hands out the services for a profile. A profile stands in for one
// browser profile: it holds at most one token.
type Workspaces struct {
	backend ports.TokenBackend
	newAPI  ports.DepartmentAPIFactory
	obs     Observability
}

// Workspace bundles the services bound to one profile's session.
type Workspace struct {
	Profile     string
	Session     *session.Store
	Auth        *AuthService
	Departments *DepartmentService
}

// NewWorkspaces constructs a Workspaces factory.
func NewWorkspaces(opts WorkspacesOptions) *Workspaces {
	if opts.Backend == nil {
		panic("Workspaces: Backend is required")
	}
	if opts.NewAPI == nil {
		panic("Workspaces: NewAPI is required")
	}
	if opts.Observability.Logger == nil {
		opts.Observability.Logger = slog.Default()
	}
	return &Workspaces{backend: opts.Backend, newAPI: opts.NewAPI, obs: opts.Observability}
}

// For returns the workspace for profile. Workspaces are cheap and hold no state
// beyond what the token backend stores, so callers may build one per request.
func (w *Workspaces) For(profile string) *Workspace {
	store := session.NewStore(session.StoreOptions{
		Backend: w.backend,
		Profile: profile,
		Logger:  w.obs.Logger,
	})
	api := w.newAPI(store)
	obs := Observability{
		Logger:  w.obs.Logger.With("profile", store.Profile()),
		Metrics: w.obs.Metrics,
	}
	return &Workspace{
		Profile:     store.Profile(),
		Session:     store,
		Auth:        NewAuthService(AuthServiceOptions{Session: store, API: api, Observability: obs}),
		Departments: NewDepartmentService(DepartmentServiceOptions{Session: store, API: api, Observability: obs}),
	}
}
