package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	deptdash "github.com/target/deptdash"
	"github.com/target/deptdash/config"
	httpx "github.com/target/deptdash/internal/http"
	"github.com/target/deptdash/internal/observability/metrics"
)

// HTTPServerConfig contains configuration for the dashboard HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router and its middleware stack.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return nil, errors.New("http server: config and services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	templates, static, err := frontendFS(appCfg.IsDev)
	if err != nil {
		return nil, err
	}
	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templates,
		DevMode:    appCfg.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	services := httpx.RouterServices{
		Workspaces: cfg.Services.Workspaces,
		Renderer:   renderer,
		Cookies: httpx.CookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			Secure: appCfg.HTTP.CookieSecure && !appCfg.IsDev,
		},
		LoginLimiter: httpx.NewClientLimiter(httpx.LimiterConfig{
			PerMinute: appCfg.HTTP.LoginRatePerMinute,
			Burst:     appCfg.HTTP.LoginBurst,
		}),
		Static: static,
		Logger: logger,
	}
	if appCfg.Observability.Metrics.IsEnabled() {
		registerRuntimeCollectors(cfg.Services.Registry, logger)
		services.Metrics = metrics.Handler(cfg.Services.Registry)
		services.MetricsPath = appCfg.Observability.Metrics.Path
	}

	// Order: Recover -> RequestID -> Logging -> Compression -> Router
	h := httpx.NewRouter(services)
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel})(h)
	}
	h = httpx.Logging(logger)(h)
	h = httpx.RequestID(h)
	h = httpx.Recover(logger)(h)
	return h, nil
}

func frontendFS(dev bool) (fs.FS, fs.FS, error) {
	if dev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}
	templates, err := fs.Sub(deptdash.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, err
	}
	static, err := fs.Sub(deptdash.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, err
	}
	return templates, static, nil
}

func registerRuntimeCollectors(reg *prometheus.Registry, logger *slog.Logger) {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				logger.Warn("register runtime collector failed", "error", err)
			}
		}
	}
}

// StartHTTPServer listens on addr and serves handler in the background.
// Listening happens synchronously so a taken port is reported to the caller.
func StartHTTPServer(logger *slog.Logger, handler http.Handler, addr string) (*http.Server, error) {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	go func() {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server, nil
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
	Timeout time.Duration
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
