package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/target/deptdash/config"
	"github.com/target/deptdash/internal/adapters/deptapi"
	"github.com/target/deptdash/internal/observability/metrics"
	"github.com/target/deptdash/internal/observability/statsd"
	"github.com/target/deptdash/internal/ports"
	"github.com/target/deptdash/internal/service"
)

// ServiceDeps contains dependencies for building the service layer.
type ServiceDeps struct {
	Config  *config.AppConfig
	Backend ports.TokenBackend
	Logger  *slog.Logger
}

// ServiceContainer holds the wired services and the metrics registry that backs them.
type ServiceContainer struct {
	Workspaces *service.Workspaces
	Client     *deptapi.Client
	Registry   *prometheus.Registry
	Metrics    metrics.Sink

	statsd *statsd.Client
}

// Close releases the StatsD socket, if any.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	return c.statsd.Close()
}

// NewServices wires the department client, metrics and workspace factory.
func NewServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil || deps.Backend == nil {
		return nil, fmt.Errorf("services: config and backend are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	sink, statsdClient, err := newMetricsSink(deps.Config.Observability.Metrics, registry, logger)
	if err != nil {
		return nil, err
	}

	client, err := NewDepartmentClient(deps.Config.API, logger, sink)
	if err != nil {
		return nil, errors.Join(err, statsdClient.Close())
	}

	workspaces := service.NewWorkspaces(service.WorkspacesOptions{
		Backend:       deps.Backend,
		NewAPI:        client.Factory(),
		Observability: service.Observability{Logger: logger, Metrics: sink},
	})

	return &ServiceContainer{
		Workspaces: workspaces,
		Client:     client,
		Registry:   registry,
		Metrics:    sink,
		statsd:     statsdClient,
	}, nil
}

// newMetricsSink combines the Prometheus collector and the StatsD client,
// whichever are enabled. The sink is nil when neither is.
func newMetricsSink(
	cfg config.ObservabilityMetricsConfig,
	registry *prometheus.Registry,
	logger *slog.Logger,
) (metrics.Sink, *statsd.Client, error) {
	var sinks []metrics.Sink
	if cfg.IsEnabled() {
		sinks = append(sinks, metrics.NewCollector(registry))
	}

	var client *statsd.Client
	if cfg.StatsdEnabled() {
		var err error
		client, err = statsd.NewClient(statsd.Config{
			Address: cfg.StatsdAddress,
			Prefix:  cfg.StatsdPrefix,
			Logger:  logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("metrics: %w", err)
		}
		sinks = append(sinks, client)
		logger.Info("statsd metrics enabled", "address", cfg.StatsdAddress)
	}

	return metrics.Fanout(sinks...), client, nil
}

// NewDepartmentClient builds the remote service client from API configuration.
func NewDepartmentClient(cfg config.APIConfig, logger *slog.Logger, sink metrics.Sink) (*deptapi.Client, error) {
	scheme, err := deptapi.ParseAuthScheme(cfg.AuthScheme)
	if err != nil {
		return nil, err
	}
	client, err := deptapi.NewClient(deptapi.Config{
		BaseURL:    cfg.BaseURL,
		AuthScheme: scheme,
		Timeout:    cfg.Timeout,
		Logger:     logger,
		Metrics:    sink,
	})
	if err != nil {
		return nil, fmt.Errorf("department client: %w", err)
	}
	return client, nil
}
