package observability

import (
	"context"
	"errors"
	"strings"

	"github.com/riskibarqy/lzvcup-scraper/internal/config"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace points the global OpenTelemetry providers at Uptrace. With log
// export on, the returned logger mirrors entries to Uptrace; otherwise it is
// the logger passed in. The shutdown func flushes pending spans and logs.
func InitUptrace(cfg config.Config, logger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Debug("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return logger, func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(
			attribute.String("lzvcup.base_url", cfg.BaseURL),
			attribute.Int("lzvcup.areas", len(cfg.Areas)),
		),
	)
	logger.Info("uptrace exporting", "service", cfg.ServiceName, "logs", cfg.UptraceLogsEnabled)

	shutdown := func(ctx context.Context) error {
		return errors.Join(uptrace.ForceFlush(ctx), uptrace.Shutdown(ctx))
	}
	if !cfg.UptraceLogsEnabled {
		return logger, shutdown, nil
	}
	return logger.WithMirror(newUptraceLogMirror(cfg.ServiceVersion)), shutdown, nil
}
