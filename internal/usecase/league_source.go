package usecase

import (
	"context"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
)

// LeagueSource fetches and parses the league site pages. Implementations
// return ErrPageUnavailable when a page cannot be retrieved.
type LeagueSource interface {
	RegionCards(ctx context.Context, areaURL string) ([]RegionCard, error)
	CompetitionPage(ctx context.Context, competitionURL string) (CompetitionPage, error)
	TeamPage(ctx context.Context, teamURL string) (TeamPage, error)
	Sportshalls(ctx context.Context, listingURL string) ([]sportshall.Sportshall, error)
}

// PlayerHistorySource fetches one player's profile history. It must be safe
// for concurrent use.
type PlayerHistorySource interface {
	PlayerHistory(ctx context.Context, ref player.Ref) ([]player.HistoricalEntry, error)
}

// Geocoder resolves a venue address to coordinates. ok is false when
// nothing matched, which is not an error.
type Geocoder interface {
	Locate(ctx context.Context, address, fallback, area string) (coords sportshall.Coordinates, ok bool, err error)
}

// RegionCard is one collapsible region block of an area page.
type RegionCard struct {
	Region         string
	Competitions   []Link
	SportshallsURL string
}

// Link is a labelled absolute URL.
type Link struct {
	Name string
	URL  string
}

// CompetitionPage holds everything parsed from one competition page. Rows
// carry no area/region/competition labels yet.
type CompetitionPage struct {
	Roster    []Link
	Schedule  []schedule.Game
	Standings []standing.Standing
}

// TeamPage holds the two optional tables of a team page.
type TeamPage struct {
	Stats    Section[player.Stat]
	Palmares Section[palmares.Entry]
}

// Section is a parsed page section that may legitimately be absent.
// Missing holds the reason when it is.
type Section[T any] struct {
	Rows    []T
	Missing error
}

func PresentSection[T any](rows []T) Section[T] {
	return Section[T]{Rows: rows}
}

func AbsentSection[T any](reason error) Section[T] {
	if reason == nil {
		reason = ErrMissingData
	}
	return Section[T]{Missing: reason}
}

func (s Section[T]) Present() bool {
	return s.Missing == nil
}
