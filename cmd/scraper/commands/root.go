package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/riskibarqy/lzvcup-scraper/internal/config"
	"github.com/riskibarqy/lzvcup-scraper/internal/observability"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/spf13/cobra"
)

// errRunFailures is returned when the pipeline finished but lost units of
// work. The summary has already been printed at that point.
var errRunFailures = errors.New("scrape finished with failures")

// runtime is built once per invocation by the root command.
type runtime struct {
	cfg    config.Config
	logger *logging.Logger

	baseLogger   *logging.Logger
	stopUptrace  func(context.Context) error
	stopProfiler func() error
}

var rt runtime

var rootCmd = &cobra.Command{
	Use:           "scraper",
	Short:         "scraper collects competitions, teams, players and venues from the LZV Cup site.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		base, err := logging.New(logging.Options{
			Level:    cfg.LogLevel,
			Format:   cfg.LogFormat,
			FilePath: cfg.LogFile,
		})
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}

		logger, stopUptrace, err := observability.InitUptrace(cfg, base)
		if err != nil {
			_ = base.Sync()
			return fmt.Errorf("init uptrace: %w", err)
		}
		stopProfiler, err := observability.InitPyroscope(cfg, logger)
		if err != nil {
			_ = stopUptrace(cmd.Context())
			_ = base.Sync()
			return fmt.Errorf("init pyroscope: %w", err)
		}

		rt = runtime{
			cfg:          cfg,
			logger:       logger,
			baseLogger:   base,
			stopUptrace:  stopUptrace,
			stopProfiler: stopProfiler,
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd, regionsCmd)
}

func shutdown() {
	if rt.stopProfiler != nil {
		if err := rt.stopProfiler(); err != nil {
			rt.logger.Warn("stop pyroscope failed", "error", err)
		}
	}
	if rt.stopUptrace != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rt.stopUptrace(ctx); err != nil {
			rt.logger.Warn("stop uptrace failed", "error", err)
		}
		cancel()
	}
	if rt.baseLogger != nil {
		_ = rt.baseLogger.Sync()
	}
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	shutdown()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errRunFailures) {
		fmt.Fprintln(os.Stderr, err)
	}
	return 1
}
