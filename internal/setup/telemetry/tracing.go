package telemetry

import (
	"context"

	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.uber.org/zap"
)

// ServiceVersion is reported with every span.
const ServiceVersion = config.RepositoryVersion

// SetupTracing configures the OpenTelemetry exporter when a DSN is configured.
// The returned function flushes pending spans and is safe to call when tracing is disabled.
func SetupTracing(serviceType ServiceType, cfg *config.Telemetry, logger *zap.Logger) func(context.Context) {
	if cfg.DSN == "" {
		logger.Debug("Tracing disabled")
		return func(context.Context) {}
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.DSN),
		uptrace.WithServiceName("casebot-"+serviceType.String()),
		uptrace.WithServiceVersion(ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.Environment),
	)

	logger.Info("Tracing enabled", zap.String("environment", cfg.Environment))

	return func(ctx context.Context) {
		if err := uptrace.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown tracing", zap.Error(err))
		}
	}
}
