package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/target/deptdash/internal/service"
)

// RouterServices holds everything the dashboard routes depend on.
type RouterServices struct {
	Workspaces *service.Workspaces
	Renderer   *TemplateRenderer
	Cookies    CookieConfig

	// LoginLimiter throttles POST /auth/login and /auth/register; nil disables it.
	LoginLimiter *ClientLimiter

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string

	// Static is served under /static/ when non-nil.
	Static fs.FS

	Logger *slog.Logger
}

type handlers struct {
	workspaces *service.Workspaces
	renderer   *TemplateRenderer
	cookies    CookieConfig
	logger     *slog.Logger
}

// NewRouter builds the dashboard handler. Request logging and panic recovery are
// applied by the caller.
func NewRouter(svc RouterServices) http.Handler {
	if svc.Workspaces == nil {
		panic("httpx: Workspaces is required")
	}
	if svc.Renderer == nil {
		panic("httpx: Renderer is required")
	}
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{
		workspaces: svc.Workspaces,
		renderer:   svc.Renderer,
		cookies:    svc.Cookies,
		logger:     logger,
	}

	app := http.NewServeMux()
	app.HandleFunc("GET /{$}", h.index)
	app.HandleFunc("GET /auth", h.authPage)
	app.HandleFunc("POST /auth/login", svc.LoginLimiter.Limit(h.login, h.tooManyAttempts))
	app.HandleFunc("POST /auth/register", svc.LoginLimiter.Limit(h.register, h.tooManyAttempts))
	app.HandleFunc("POST /auth/logout", h.logout)
	app.HandleFunc("GET /auth/status", h.status)
	app.HandleFunc("GET /dashboard", h.dashboard)
	app.HandleFunc("POST /departments", h.addDepartment)
	app.HandleFunc("POST /departments/{id}/delete", h.deleteDepartment)
	app.HandleFunc("GET /department/{id}", h.viewDepartment)
	app.HandleFunc("/", h.notFound)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)
	if svc.Metrics != nil {
		path := svc.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, svc.Metrics)
	}
	if svc.Static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(svc.Static)))
	}
	mux.Handle("/", Chain(app, Profile(svc.Cookies), CSRFProtection(svc.Cookies)))
	return mux
}

func (h *handlers) workspace(r *http.Request) *service.Workspace {
	return h.workspaces.For(ProfileFromContext(r.Context()))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}
