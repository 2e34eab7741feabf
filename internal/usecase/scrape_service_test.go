package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
	datasetmock "github.com/riskibarqy/lzvcup-scraper/internal/mocks/domain/dataset"
	usecasemock "github.com/riskibarqy/lzvcup-scraper/internal/mocks/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned pages keyed by URL. Unknown URLs are
// unavailable.
type fakeSource struct {
	areas        map[string][]RegionCard
	areaErrs     map[string]error
	competitions map[string]CompetitionPage
	compErrs     map[string]error
	teams        map[string]TeamPage
	halls        map[string][]sportshall.Sportshall
}

func (f *fakeSource) RegionCards(_ context.Context, areaURL string) ([]RegionCard, error) {
	if err, ok := f.areaErrs[areaURL]; ok {
		return nil, err
	}
	if cards, ok := f.areas[areaURL]; ok {
		return cards, nil
	}
	return nil, fmt.Errorf("fetch area page: %w", ErrPageUnavailable)
}

func (f *fakeSource) CompetitionPage(_ context.Context, competitionURL string) (CompetitionPage, error) {
	if err, ok := f.compErrs[competitionURL]; ok {
		return CompetitionPage{}, err
	}
	if page, ok := f.competitions[competitionURL]; ok {
		return page, nil
	}
	return CompetitionPage{}, fmt.Errorf("fetch competition page: %w", ErrPageUnavailable)
}

func (f *fakeSource) TeamPage(_ context.Context, teamURL string) (TeamPage, error) {
	if page, ok := f.teams[teamURL]; ok {
		return page, nil
	}
	return TeamPage{}, fmt.Errorf("fetch team page: %w", ErrPageUnavailable)
}

func (f *fakeSource) Sportshalls(_ context.Context, listingURL string) ([]sportshall.Sportshall, error) {
	if halls, ok := f.halls[listingURL]; ok {
		out := make([]sportshall.Sportshall, len(halls))
		copy(out, halls)
		return out, nil
	}
	return nil, fmt.Errorf("fetch sportshalls page: %w", ErrPageUnavailable)
}

const (
	urlAreaOK      = "https://www.lzvcup.be/results/5"
	urlAreaBroken  = "https://www.lzvcup.be/results/9"
	urlComp1       = "https://www.lzvcup.be/competition/11"
	urlComp2       = "https://www.lzvcup.be/competition/12"
	urlComp3       = "https://www.lzvcup.be/competition/13"
	urlTeamA       = "https://www.lzvcup.be/team/1"
	urlTeamB       = "https://www.lzvcup.be/team/2"
	urlSportshalls = "https://www.lzvcup.be/sportshalls/3"
	urlPlayer      = "https://www.lzvcup.be/player/42"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func pipelineSource() *fakeSource {
	return &fakeSource{
		areas: map[string][]RegionCard{
			urlAreaOK: {
				{
					Region: "Leuven",
					Competitions: []Link{
						{Name: "1e klasse", URL: urlComp1},
						{Name: "2e klasse", URL: urlComp2},
					},
					SportshallsURL: urlSportshalls,
				},
				{
					Region:       "Leuven Dames",
					Competitions: []Link{{Name: "Dames", URL: urlComp3}},
				},
			},
		},
		areaErrs: map[string]error{
			urlAreaBroken: fmt.Errorf("region headers vs blocks: %w", ErrStructuralMismatch),
		},
		competitions: map[string]CompetitionPage{
			urlComp1: {
				Roster: []Link{{Name: "Team A", URL: urlTeamA}, {Name: "Team B", URL: urlTeamB}},
				Schedule: []schedule.Game{
					{Sportshall: "De Kouter", Day: "ma", Date: "2023-10-02", Hour: "20:30", Team1: "Team A", Goals1: intPtr(3), Team2: "Team B", Goals2: intPtr(2)},
					{Sportshall: "Sporthal Heverlee", Day: "di", Date: "2023-10-10", Hour: "21:15", Team1: "Team B", Team2: "Team A"},
				},
				Standings: []standing.Standing{
					{Team: "Team A", Gespeeld: 1, Gewonnen: 1, DG: 3, DT: 2, DS: 1, Punten: 3, Ptnm: 3, Positie: 1},
					{Team: "Team B", Gespeeld: 1, Verloren: 1, DG: 2, DT: 3, DS: -1, Ptnm: 0, Positie: 2},
				},
			},
		},
		compErrs: map[string]error{
			urlComp2: fmt.Errorf("standings ptnm %q: %w", "x", ErrCoercion),
		},
		teams: map[string]TeamPage{
			urlTeamA: {
				Stats: PresentSection([]player.Stat{
					{Name: "Jan Peeters", Number: intPtr(7), URL: urlPlayer, Wedstrijden: 1, Goals: 2},
				}),
				Palmares: PresentSection([]palmares.Entry{{Seizoen: "2022-2023", Reeks: "1e klasse", Positie: 2}}),
			},
			urlTeamB: {
				Stats:    AbsentSection[player.Stat](fmt.Errorf("player stats table: %w", ErrMissingData)),
				Palmares: PresentSection([]palmares.Entry{{Seizoen: "2022-2023", Reeks: "2e klasse", Positie: 5}}),
			},
		},
		halls: map[string][]sportshall.Sportshall{
			urlSportshalls: {
				{Name: "De Kouter", Address: strPtr("Kouterstraat 1, 3000 Leuven")},
				{Name: "Sporthal Heverlee", Email: strPtr("info@heverlee.be")},
			},
		},
	}
}

func TestScrapeService_Run_CollectsPartialDataset(t *testing.T) {
	t.Parallel()

	history := usecasemock.NewPlayerHistorySource(t)
	history.
		On("PlayerHistory", mock.Anything, player.Ref{Name: "Jan Peeters", URL: urlPlayer}).
		Return([]player.HistoricalEntry{{Team: "Team A", Seizoen: "2022-2023", Goals: 11}}, nil).
		Once()

	geocoder := usecasemock.NewGeocoder(t)
	geocoder.
		On("Locate", mock.Anything, "Kouterstraat 1, 3000 Leuven", "De Kouter", "VLAAMS BRABANT").
		Return(sportshall.Coordinates{Latitude: 50.88, Longitude: 4.70}, true, nil).
		Once()

	sink := datasetmock.NewRepository(t)
	sink.
		On("Replace", mock.Anything, mock.MatchedBy(func(d dataset.Dataset) bool {
			return len(d.Teams) == 2 && len(d.PlayerHistory) == 1
		})).
		Return(nil).
		Once()

	service := NewScrapeService(
		pipelineSource(),
		NewPlayerHistoryService(history, 2, nil),
		geocoder,
		nil,
		nil,
		sink,
	)

	data, report, err := service.Run(context.Background(), []league.Area{
		{Name: "VLAAMS BRABANT", URL: urlAreaOK},
		{Name: "LIMBURG", URL: urlAreaBroken},
	})
	require.NoError(t, err)

	wantCompetitions := []league.Competition{
		{Area: "VLAAMS BRABANT", Region: "Leuven", Name: "1e klasse", URL: urlComp1},
		{Area: "VLAAMS BRABANT", Region: "Leuven", Name: "2e klasse", URL: urlComp2},
		{Area: "VLAAMS BRABANT", Region: "Leuven Dames", Name: "Dames", URL: urlComp3},
	}
	if diff := cmp.Diff(wantCompetitions, data.Competitions); diff != "" {
		t.Fatalf("competitions mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, data.Teams, 2)
	assert.Equal(t, "1e klasse", data.Teams[0].Competition)
	require.Len(t, data.Schedules, 2)
	assert.Equal(t, "VLAAMS BRABANT", data.Schedules[0].Area)
	assert.Equal(t, "Leuven", data.Schedules[0].Region)
	assert.Equal(t, "1e klasse", data.Schedules[1].Competition)
	require.Len(t, data.Standings, 2)
	assert.Equal(t, "1e klasse", data.Standings[0].Competition)

	require.Len(t, data.PlayerStats, 1)
	assert.Equal(t, "Team A", data.PlayerStats[0].Team)
	require.Len(t, data.Palmares, 2)
	assert.Equal(t, "Team B", data.Palmares[1].Team)

	require.Len(t, data.PlayerHistory, 1)
	assert.Equal(t, "Jan Peeters", data.PlayerHistory[0].Name)

	require.Len(t, data.Sportshalls, 2)
	assert.Equal(t, urlSportshalls, data.Sportshalls[0].RegionURL)
	require.NotNil(t, data.Sportshalls[0].Latitude)
	assert.Equal(t, 50.88, *data.Sportshalls[0].Latitude)
	assert.Nil(t, data.Sportshalls[1].Latitude)

	assert.Equal(t, []schedule.Location{
		{Team: "Team A", Sportshall: "De Kouter"},
		{Team: "Team B", Sportshall: "Sporthal Heverlee"},
	}, data.Locations)

	require.Len(t, data.Levels, 2)
	for _, l := range data.Levels {
		if l.Tier < 1 || l.Tier > 3 || l.Name == "" {
			t.Fatalf("invalid level: %+v", l)
		}
	}

	assert.True(t, report.HasFailures())
	failures := map[string]string{}
	for _, f := range report.Failures {
		failures[f.Unit] = f.URL
	}
	assert.Equal(t, map[string]string{UnitCompetition: urlComp2, UnitArea: urlAreaBroken}, failures)

	skipped := map[string]string{}
	for _, s := range report.Skipped {
		skipped[s.Unit] = s.URL
	}
	assert.Equal(t, map[string]string{UnitCompetition: urlComp3, UnitTeam: urlTeamB}, skipped)
	assert.Equal(t, 2, report.RowCounts[dataset.TableTeams])
}

func TestScrapeService_Run_NoAreas(t *testing.T) {
	t.Parallel()

	_, _, err := NewScrapeService(pipelineSource(), nil, nil, nil, nil).Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestScrapeService_Run_SinkErrorIsReturned(t *testing.T) {
	t.Parallel()

	sink := datasetmock.NewRepository(t)
	sink.On("Replace", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	_, _, err := NewScrapeService(pipelineSource(), nil, nil, nil, nil, sink).
		Run(context.Background(), []league.Area{{Name: "VLAAMS BRABANT", URL: urlAreaOK}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store dataset")
}

func TestScrapeService_Run_UnavailableAreaIsSkipped(t *testing.T) {
	t.Parallel()

	data, report, err := NewScrapeService(pipelineSource(), nil, nil, nil, nil).
		Run(context.Background(), []league.Area{{Name: "OOST-VLAANDEREN", URL: "https://www.lzvcup.be/results/404"}})
	require.NoError(t, err)
	assert.False(t, report.HasFailures())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, UnitArea, report.Skipped[0].Unit)
	assert.Empty(t, data.Teams)
}

func TestScrapeService_Run_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := pipelineSource()
	source.areaErrs[urlAreaOK] = context.Canceled

	_, _, err := NewScrapeService(source, nil, nil, nil, nil).
		Run(ctx, []league.Area{{Name: "VLAAMS BRABANT", URL: urlAreaOK}})
	require.ErrorIs(t, err, context.Canceled)
}
