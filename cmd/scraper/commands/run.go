package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lzvcup-scraper/internal/app"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lzvcup-scraper/cmd/scraper")

var runFlags struct {
	dryRun     bool
	workers    int
	areas      []string
	noGeocode  bool
	jsonReport bool
}

func init() {
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "Scrape without writing to the database or export directory.")
	runCmd.Flags().IntVar(&runFlags.workers, "workers", 0, "Player history workers (defaults to HISTORY_WORKERS).")
	runCmd.Flags().StringSliceVar(&runFlags.areas, "area", nil, "Only scrape the named area; repeatable.")
	runCmd.Flags().BoolVar(&runFlags.noGeocode, "no-geocode", false, "Skip sportshall geocoding.")
	runCmd.Flags().BoolVar(&runFlags.jsonReport, "json", false, "Print the run report as JSON instead of tables.")
}

var runCmd = &cobra.Command{
	Use:   "run [--dry-run] [--workers N] [--area NAME...]",
	Short: "Scrapes every configured area and replaces the stored dataset.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runFlags.workers < 0 {
			return fmt.Errorf("--workers must not be negative")
		}
		areas, err := selectAreas(rt.cfg.Areas, runFlags.areas)
		if err != nil {
			return err
		}

		ctx, span := tracer.Start(cmd.Context(), "scraper.run")
		defer span.End()
		span.SetAttributes(
			attribute.Int("areas", len(areas)),
			attribute.Bool("dry_run", runFlags.dryRun),
		)

		scraper, err := app.NewScraper(ctx, rt.cfg, app.Options{
			DryRun:      runFlags.dryRun,
			Workers:     runFlags.workers,
			SkipGeocode: runFlags.noGeocode,
		}, rt.logger)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "build scraper")
			return err
		}
		defer func() {
			if err := scraper.Close(); err != nil {
				rt.logger.Warn("close scraper resources failed", "error", err)
			}
		}()

		_, report, runErr := scraper.Service.Run(ctx, areas)

		if runFlags.jsonReport {
			raw, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(raw))
		} else {
			renderReport(os.Stdout, report)
		}

		if runErr != nil {
			span.RecordError(runErr)
			span.SetStatus(codes.Error, "scrape run")
			return runErr
		}
		if report.HasFailures() {
			span.SetStatus(codes.Error, "units failed")
			return errRunFailures
		}
		return nil
	},
}

// selectAreas keeps the configured order and rejects unknown names.
func selectAreas(configured []league.Area, names []string) ([]league.Area, error) {
	if len(names) == 0 {
		return configured, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.ToUpper(strings.TrimSpace(name))] = false
	}

	out := make([]league.Area, 0, len(names))
	for _, area := range configured {
		key := strings.ToUpper(area.Name)
		if _, ok := wanted[key]; ok {
			wanted[key] = true
			out = append(out, area)
		}
	}

	var unknown []string
	for _, name := range names {
		if !wanted[strings.ToUpper(strings.TrimSpace(name))] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown area(s): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
