package observability

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/lzvcup-scraper/internal/config"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
)

var knownProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

func profileTypes(names []string) ([]pyroscope.ProfileType, error) {
	out := make([]pyroscope.ProfileType, 0, len(names))
	for _, name := range names {
		pt := pyroscope.ProfileType(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(knownProfileTypes, pt) {
			return nil, fmt.Errorf("unknown pyroscope profile type %q", name)
		}
		if !slices.Contains(out, pt) {
			out = append(out, pt)
		}
	}
	return out, nil
}

// InitPyroscope starts continuous profiling of a scrape run when enabled.
// Mutex and block profiles need their runtime sampling rates, which are
// turned on only when those types are requested.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = logging.NewNop()
	}
	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope disabled")
		return noop, nil
	}

	types, err := profileTypes(cfg.PyroscopeProfileTypes)
	if err != nil {
		return nil, err
	}
	if slices.Contains(types, pyroscope.ProfileMutexCount) || slices.Contains(types, pyroscope.ProfileMutexDuration) {
		runtime.SetMutexProfileFraction(5)
	}
	if slices.Contains(types, pyroscope.ProfileBlockCount) || slices.Contains(types, pyroscope.ProfileBlockDuration) {
		runtime.SetBlockProfileRate(5)
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		ProfileTypes:      types,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	logger.Info("pyroscope profiling started",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"profiles", len(types),
	)
	return profiler.Stop, nil
}
