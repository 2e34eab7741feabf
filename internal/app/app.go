package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/lzvcup-scraper/external/lzvcup"
	"github.com/riskibarqy/lzvcup-scraper/internal/config"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/infrastructure/geocode"
	"github.com/riskibarqy/lzvcup-scraper/internal/infrastructure/repository/export"
	"github.com/riskibarqy/lzvcup-scraper/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lzvcup-scraper/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/resilience"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Options are per-invocation overrides of the loaded config.
type Options struct {
	// DryRun keeps the dataset in memory only.
	DryRun bool
	// Workers overrides HISTORY_WORKERS when > 0.
	Workers int
	// SkipGeocode disables the geocoder for this run.
	SkipGeocode bool
}

// Scraper holds the wired pipeline and the resources it owns.
type Scraper struct {
	Service *usecase.ScrapeService
	// Memory always receives the dataset, also on dry runs.
	Memory *memory.DatasetRepository

	closers []func() error
}

func NewScraper(ctx context.Context, cfg config.Config, opts Options, logger *logging.Logger) (*Scraper, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Scraper{Memory: memory.NewDatasetRepository()}

	client := lzvcup.NewClient(lzvcup.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Retry: resilience.RetryPolicy{
			MaxRetries:  cfg.MaxRetries,
			BaseBackoff: cfg.RetryBaseBackoff,
			MaxBackoff:  cfg.RetryMaxBackoff,
		},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
		Logger: logger.Named("lzvcup"),
	})

	workers := cfg.HistoryWorkers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	history := usecase.NewPlayerHistoryService(client, workers, logger.Named("history"))

	var geocoder usecase.Geocoder
	if cfg.GeocodeEnabled && !opts.SkipGeocode {
		g, err := s.newGeocoder(ctx, cfg, logger)
		if err != nil {
			s.Close()
			return nil, err
		}
		geocoder = g
	}

	sinks := []dataset.Repository{s.Memory}
	if !opts.DryRun {
		if cfg.StoreEnabled {
			repo, err := s.newPostgresRepository(ctx, cfg, logger)
			if err != nil {
				s.Close()
				return nil, err
			}
			sinks = append(sinks, repo)
		}
		if cfg.ExportDir != "" {
			sinks = append(sinks, export.NewExporter(cfg.ExportDir, logger.Named("export")))
		}
	}

	s.Service = usecase.NewScrapeService(
		client,
		history,
		geocoder,
		level.NewEstimator(cfg.LevelMarkers),
		logger.Named("scrape"),
		sinks...,
	)
	return s, nil
}

func (s *Scraper) newGeocoder(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.Geocoder, error) {
	nominatim := geocode.NewNominatim(geocode.NominatimConfig{
		BaseURL:           cfg.GeocodeURL,
		UserAgent:         cfg.GeocodeUserAgent,
		RequestsPerSecond: cfg.GeocodeRPS,
	})

	var persist geocode.CoordinateCache
	switch {
	case cfg.GeocodeRedisURL != "":
		redisCache, err := geocode.NewRedisCache(ctx, cfg.GeocodeRedisURL, cfg.GeocodeCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("connect geocode cache: %w", err)
		}
		s.closers = append(s.closers, redisCache.Close)
		persist = redisCache
	case cfg.GeocodeCacheFile != "":
		fileCache, err := geocode.OpenFileCache(cfg.GeocodeCacheFile)
		if err != nil {
			return nil, fmt.Errorf("open geocode cache: %w", err)
		}
		logger.Info("geocode cache loaded", "path", cfg.GeocodeCacheFile, "entries", fileCache.Len())
		persist = fileCache
	}

	return geocode.NewCached(nominatim, persist, logger.Named("geocode")), nil
}

func (s *Scraper) newPostgresRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (*postgres.DatasetRepository, error) {
	dbURL := postgres.PrepareDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := OpenDB(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)
	return postgres.NewDatasetRepository(db, dbURL, logger.Named("postgres")), nil
}

// OpenDB opens a traced postgres handle and checks the connection.
func OpenDB(ctx context.Context, dbURL string) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(postgres.DatabaseName(dbURL)),
		otelsql.WithQueryFormatter(postgres.TraceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Close releases database and cache connections in reverse order.
func (s *Scraper) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
