package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	UnitArea        = "area"
	UnitCompetition = "competition"
	UnitTeam        = "team"
	UnitSportshalls = "sportshalls"
	UnitPlayer      = "player"
)

// UnitIssue describes one unit of work that failed or was skipped.
type UnitIssue struct {
	Unit        string `json:"unit"`
	Area        string `json:"area,omitempty"`
	Region      string `json:"region,omitempty"`
	Competition string `json:"competition,omitempty"`
	Name        string `json:"name,omitempty"`
	URL         string `json:"url,omitempty"`
	Reason      string `json:"reason"`
}

// RunReport summarizes a scrape run for the operator.
type RunReport struct {
	StartedAt  time.Time           `json:"started_at"`
	DurationMs int64               `json:"duration_ms"`
	RowCounts  map[string]int      `json:"row_counts"`
	Failures   []UnitIssue         `json:"failures"`
	Skipped    []UnitIssue         `json:"skipped"`
	History    PlayerHistoryResult `json:"history"`
}

// HasFailures reports whether any area, competition or player was lost to
// a fatal error.
func (r RunReport) HasFailures() bool {
	return len(r.Failures) > 0
}

type ScrapeService struct {
	source    LeagueSource
	history   *PlayerHistoryService
	geocoder  Geocoder
	estimator *level.Estimator
	sinks     []dataset.Repository
	logger    *logging.Logger
}

// NewScrapeService wires the pipeline. geocoder may be nil; with no sinks
// the run only reports.
func NewScrapeService(
	source LeagueSource,
	history *PlayerHistoryService,
	geocoder Geocoder,
	estimator *level.Estimator,
	logger *logging.Logger,
	sinks ...dataset.Repository,
) *ScrapeService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if estimator == nil {
		estimator = level.NewEstimator(level.DefaultMarkers())
	}
	return &ScrapeService{
		source:    source,
		history:   history,
		geocoder:  geocoder,
		estimator: estimator,
		sinks:     sinks,
		logger:    logger,
	}
}

// Run scrapes every area in order, derives locations and levels, fetches
// player history and hands the dataset to every sink. Structural and
// coercion errors are recorded per unit; only context cancellation and
// sink errors end the run early.
func (s *ScrapeService) Run(ctx context.Context, areas []league.Area) (data dataset.Dataset, report RunReport, err error) {
	ctx, span := startSpan(ctx, "usecase.ScrapeService.Run", attribute.Int("areas", len(areas)))
	defer func() {
		span.SetAttributes(
			attribute.Int("failures", len(report.Failures)),
			attribute.Int("skipped", len(report.Skipped)),
		)
		span.end(err)
	}()

	report.StartedAt = time.Now()

	if len(areas) == 0 {
		return data, report, fmt.Errorf("%w: no areas configured", ErrInvalidInput)
	}

	for _, area := range areas {
		if err := s.scrapeArea(ctx, area, &data, &report); err != nil {
			return data, report, err
		}
	}

	data.Locations = schedule.DeriveLocations(data.Schedules)

	if s.history != nil {
		refs := player.DistinctRefs(data.PlayerStats)
		history, err := s.history.Fetch(ctx, refs)
		report.History = history
		data.PlayerHistory = history.Rows
		for _, f := range history.Failures {
			report.Failures = append(report.Failures, UnitIssue{
				Unit:   UnitPlayer,
				Name:   f.Player.Name,
				URL:    f.Player.URL,
				Reason: f.Message,
			})
		}
		if err != nil {
			return data, report, fmt.Errorf("fetch player history: %w", err)
		}
	}

	data.Levels = s.estimator.Estimate(data.Standings, data.Palmares)
	report.RowCounts = data.RowCounts()

	for _, sink := range s.sinks {
		if err := sink.Replace(ctx, data); err != nil {
			report.DurationMs = time.Since(report.StartedAt).Milliseconds()
			return data, report, fmt.Errorf("store dataset: %w", err)
		}
	}

	report.DurationMs = time.Since(report.StartedAt).Milliseconds()
	s.logger.InfoContext(ctx, "scrape run finished",
		"duration_ms", report.DurationMs,
		"failures", len(report.Failures),
		"skipped", len(report.Skipped),
		"teams", len(data.Teams),
		"players", len(data.PlayerStats),
	)
	return data, report, nil
}

// RegionCards exposes the area page parse on its own, for inspection.
func (s *ScrapeService) RegionCards(ctx context.Context, area league.Area) ([]RegionCard, error) {
	return s.source.RegionCards(ctx, area.URL)
}

func (s *ScrapeService) scrapeArea(ctx context.Context, area league.Area, data *dataset.Dataset, report *RunReport) (err error) {
	ctx, span := startSpan(ctx, "usecase.ScrapeService.scrapeArea", attribute.String("area", area.Name))
	defer func() { span.end(err) }()

	logger := s.logger.Named(area.Name).With("area", area.Name)
	cards, err := s.source.RegionCards(ctx, area.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		issue := UnitIssue{Unit: UnitArea, Area: area.Name, URL: area.URL, Reason: err.Error()}
		if IsAbsence(err) {
			logger.WarnContext(ctx, "area skipped", "url", area.URL, "error", err)
			report.Skipped = append(report.Skipped, issue)
			return nil
		}
		logger.ErrorContext(ctx, "area aborted", "url", area.URL, "error", err)
		report.Failures = append(report.Failures, issue)
		return nil
	}
	logger.InfoContext(ctx, "region cards parsed", "regions", len(cards))

	for _, card := range cards {
		data.Regions = append(data.Regions, league.Region{
			Area:           area.Name,
			Name:           card.Region,
			SportshallsURL: card.SportshallsURL,
		})

		for _, link := range card.Competitions {
			data.Competitions = append(data.Competitions, league.Competition{
				Area:   area.Name,
				Region: card.Region,
				Name:   link.Name,
				URL:    link.URL,
			})

			frag, err := s.scrapeCompetition(ctx, logger, area.Name, card.Region, link, report)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				issue := UnitIssue{
					Unit:        UnitCompetition,
					Area:        area.Name,
					Region:      card.Region,
					Competition: link.Name,
					URL:         link.URL,
					Reason:      err.Error(),
				}
				if IsAbsence(err) {
					logger.WarnContext(ctx, "competition skipped", "region", card.Region, "competition", link.Name, "url", link.URL, "error", err)
					report.Skipped = append(report.Skipped, issue)
				} else {
					logger.ErrorContext(ctx, "competition aborted", "region", card.Region, "competition", link.Name, "url", link.URL, "error", err)
					report.Failures = append(report.Failures, issue)
				}
				continue
			}
			frag.appendTo(data)
		}

		if card.SportshallsURL == "" {
			continue
		}
		halls, err := s.scrapeSportshalls(ctx, logger, area.Name, card)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			issue := UnitIssue{Unit: UnitSportshalls, Area: area.Name, Region: card.Region, URL: card.SportshallsURL, Reason: err.Error()}
			if IsAbsence(err) {
				logger.WarnContext(ctx, "sportshalls skipped", "region", card.Region, "url", card.SportshallsURL, "error", err)
				report.Skipped = append(report.Skipped, issue)
			} else {
				logger.ErrorContext(ctx, "sportshalls aborted", "region", card.Region, "url", card.SportshallsURL, "error", err)
				report.Failures = append(report.Failures, issue)
			}
			continue
		}
		data.Sportshalls = append(data.Sportshalls, halls...)
	}
	return nil
}

// competitionFragment collects the rows of one competition so that a fatal
// error discards the competition as a whole.
type competitionFragment struct {
	teams     []league.Team
	schedule  []schedule.Game
	standings []standing.Standing
	stats     []player.Stat
	palmares  []palmares.Entry
}

func (f competitionFragment) appendTo(data *dataset.Dataset) {
	data.Teams = append(data.Teams, f.teams...)
	data.Schedules = append(data.Schedules, f.schedule...)
	data.Standings = append(data.Standings, f.standings...)
	data.PlayerStats = append(data.PlayerStats, f.stats...)
	data.Palmares = append(data.Palmares, f.palmares...)
}

func (s *ScrapeService) scrapeCompetition(
	ctx context.Context,
	logger *logging.Logger,
	area, region string,
	link Link,
	report *RunReport,
) (frag competitionFragment, err error) {
	ctx, span := startSpan(ctx, "usecase.ScrapeService.scrapeCompetition",
		attribute.String("region", region),
		attribute.String("competition", link.Name),
	)
	defer func() { span.end(err) }()

	page, err := s.source.CompetitionPage(ctx, link.URL)
	if err != nil {
		return frag, err
	}

	for _, g := range page.Schedule {
		g.Area, g.Region, g.Competition = area, region, link.Name
		frag.schedule = append(frag.schedule, g)
	}
	for _, st := range page.Standings {
		st.Area, st.Region, st.Competition = area, region, link.Name
		frag.standings = append(frag.standings, st)
	}

	for _, entry := range page.Roster {
		frag.teams = append(frag.teams, league.Team{
			Area:        area,
			Region:      region,
			Competition: link.Name,
			Name:        entry.Name,
			URL:         entry.URL,
		})

		skip := func(reason error) {
			logger.WarnContext(ctx, "team data skipped",
				"region", region, "competition", link.Name, "team", entry.Name, "url", entry.URL, "error", reason)
			report.Skipped = append(report.Skipped, UnitIssue{
				Unit:        UnitTeam,
				Area:        area,
				Region:      region,
				Competition: link.Name,
				Name:        entry.Name,
				URL:         entry.URL,
				Reason:      reason.Error(),
			})
		}

		team, err := s.source.TeamPage(ctx, entry.URL)
		if err != nil {
			if IsAbsence(err) {
				skip(err)
				continue
			}
			return frag, fmt.Errorf("team %q: %w", entry.Name, err)
		}

		if team.Stats.Present() {
			for _, stat := range team.Stats.Rows {
				stat.Team = entry.Name
				frag.stats = append(frag.stats, stat)
			}
		} else {
			skip(fmt.Errorf("player stats: %w", team.Stats.Missing))
		}

		if team.Palmares.Present() {
			for _, p := range team.Palmares.Rows {
				p.Team = entry.Name
				frag.palmares = append(frag.palmares, p)
			}
		} else {
			skip(fmt.Errorf("palmares: %w", team.Palmares.Missing))
		}
	}

	logger.InfoContext(ctx, "competition parsed",
		"region", region,
		"competition", link.Name,
		"teams", len(frag.teams),
		"games", len(frag.schedule),
		"standings", len(frag.standings),
	)
	return frag, nil
}

func (s *ScrapeService) scrapeSportshalls(ctx context.Context, logger *logging.Logger, area string, card RegionCard) ([]sportshall.Sportshall, error) {
	halls, err := s.source.Sportshalls(ctx, card.SportshallsURL)
	if err != nil {
		return nil, err
	}

	for i := range halls {
		halls[i].Area = area
		halls[i].Region = card.Region
		halls[i].RegionURL = card.SportshallsURL
		s.locate(ctx, logger, area, &halls[i])
	}
	return halls, nil
}

func (s *ScrapeService) locate(ctx context.Context, logger *logging.Logger, area string, hall *sportshall.Sportshall) {
	if s.geocoder == nil || hall.Address == nil {
		return
	}
	coords, ok, err := s.geocoder.Locate(ctx, *hall.Address, hall.Name, area)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.WarnContext(ctx, "geocoding failed", "sportshall", hall.Name, "address", *hall.Address, "error", err)
		}
		return
	}
	if !ok {
		logger.DebugContext(ctx, "sportshall not geocoded", "sportshall", hall.Name, "address", *hall.Address)
		return
	}
	hall.SetCoordinates(coords)
}
