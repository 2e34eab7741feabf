package level

import (
	"fmt"
	"math"
	"testing"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
)

func TestEstimator_Weights(t *testing.T) {
	t.Parallel()

	e := NewEstimator(DefaultMarkers())
	if got := e.genderWeight("Regio Dames Oost-Brabant"); got != womenWeight {
		t.Fatalf("expected women weight, got=%v", got)
	}
	if got := e.genderWeight("Regio Leuven"); got != 1 {
		t.Fatalf("expected weight 1, got=%v", got)
	}
	if got := e.veteranWeight("Veteranen B"); got != veteranWeight {
		t.Fatalf("expected veteran weight, got=%v", got)
	}
	if got := e.divisionWeight("1e Klasse"); got != topDivision {
		t.Fatalf("expected top division weight, got=%v", got)
	}
	if got := e.divisionWeight("4E KLASSE C GENT"); got != bottomDivision {
		t.Fatalf("expected bottom division weight, got=%v", got)
	}
	if got := e.divisionWeight("5e Klasse"); got != bottomDivision {
		t.Fatalf("expected bottom division weight, got=%v", got)
	}
	if got := e.divisionWeight("2e Klasse"); got != otherDivision {
		t.Fatalf("expected middle division weight, got=%v", got)
	}
}

func TestDenseRankPct(t *testing.T) {
	t.Parallel()

	got := denseRankPct([]float64{3, 1, 3, 2})
	want := []float64{1, 1.0 / 3.0, 1, 2.0 / 3.0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("rank %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFillMissingWithMedian(t *testing.T) {
	t.Parallel()

	values := []float64{4, math.NaN(), 1, 3, math.NaN(), 2}
	fillMissingWithMedian(values)
	if values[1] != 2.5 || values[4] != 2.5 {
		t.Fatalf("expected missing values to become 2.5, got %v", values)
	}

	allMissing := []float64{math.NaN(), math.NaN()}
	fillMissingWithMedian(allMissing)
	if allMissing[0] != 0 || allMissing[1] != 0 {
		t.Fatalf("expected zeros, got %v", allMissing)
	}
}

func TestEstimator_TierFractions(t *testing.T) {
	t.Parallel()

	const teams = 100
	rows := make([]standing.Standing, 0, teams)
	for i := 1; i <= teams; i++ {
		rows = append(rows, standing.Standing{
			Region:      "Regio Leuven",
			Competition: "2e Klasse",
			Team:        fmt.Sprintf("Team %03d", i),
			Positie:     i,
			Ptnm:        3 - float64(i)*0.02,
		})
	}

	levels := NewEstimator(DefaultMarkers()).Estimate(rows, nil)
	if len(levels) != teams {
		t.Fatalf("expected %d levels, got=%d", teams, len(levels))
	}

	counts := map[int]int{}
	for _, l := range levels {
		counts[l.Tier]++
		if l.Name != Name(l.Tier) {
			t.Fatalf("unexpected label %q for tier %d", l.Name, l.Tier)
		}
	}
	if counts[TierTop] != 20 || counts[TierBottom] != 20 || counts[TierMiddle] != 60 {
		t.Fatalf("unexpected tier distribution: %+v", counts)
	}
	if levels[0].Tier != TierTop || levels[0].Name != "Courtois 💪💪💪" {
		t.Fatalf("expected leader in top tier, got %+v", levels[0])
	}
	if levels[teams-1].Tier != TierBottom || levels[teams-1].Name != "Mignolet 💪" {
		t.Fatalf("expected last team in bottom tier, got %+v", levels[teams-1])
	}
}

func TestEstimator_PalmaresLiftsExperiencedTeams(t *testing.T) {
	t.Parallel()

	rows := []standing.Standing{
		{Region: "Regio Leuven", Competition: "2e Klasse", Team: "Veteraan", Positie: 3, Ptnm: 1.5},
		{Region: "Regio Leuven", Competition: "2e Klasse", Team: "Nieuwkomer", Positie: 3, Ptnm: 1.5},
		{Region: "Regio Leuven", Competition: "2e Klasse", Team: "Gemiddeld", Positie: 3, Ptnm: 1.5},
	}
	history := []palmares.Entry{
		{Team: "Veteraan", Seizoen: "2020-2021", Positie: 1},
		{Team: "Veteraan", Seizoen: "2021-2022", Positie: 1},
		{Team: "Veteraan", Seizoen: "2022-2023", Positie: 2},
		{Team: "Gemiddeld", Seizoen: "2022-2023", Positie: 5},
	}

	scores := NewEstimator(DefaultMarkers()).Scores(rows, history)
	if !(scores[0].Value > scores[1].Value) {
		t.Fatalf("expected palmares to lift score: %+v", scores)
	}
}

func TestEstimator_DuplicateTeamKeepsBestRow(t *testing.T) {
	t.Parallel()

	rows := []standing.Standing{
		{Region: "Regio Leuven", Competition: "1e Klasse", Team: "Dubbel", Positie: 1, Ptnm: 3},
		{Region: "Regio Leuven", Competition: "1e Klasse", Team: "Ander", Positie: 2, Ptnm: 2},
		{Region: "Regio Hageland", Competition: "4e Klasse", Team: "Dubbel", Positie: 9, Ptnm: 0.2},
		{Region: "Regio Hageland", Competition: "4e Klasse", Team: "Derde", Positie: 3, Ptnm: 1},
		{Region: "Regio Hageland", Competition: "4e Klasse", Team: "Vierde", Positie: 4, Ptnm: 0.9},
	}

	levels := NewEstimator(DefaultMarkers()).Estimate(rows, nil)
	if len(levels) != 4 {
		t.Fatalf("expected one level per team, got=%d", len(levels))
	}
	if levels[0].Team != "Dubbel" || levels[0].Tier != TierTop {
		t.Fatalf("expected Dubbel to keep its top row, got %+v", levels[0])
	}
}

func TestEstimator_EqualScoresAreMiddleTier(t *testing.T) {
	t.Parallel()

	rows := []standing.Standing{
		{Team: "A", Competition: "2e Klasse", Positie: 1, Ptnm: 1},
		{Team: "B", Competition: "2e Klasse", Positie: 1, Ptnm: 1},
	}
	for _, l := range NewEstimator(DefaultMarkers()).Estimate(rows, nil) {
		if l.Tier != TierMiddle {
			t.Fatalf("expected middle tier, got %+v", l)
		}
	}
	if got := NewEstimator(DefaultMarkers()).Estimate(nil, nil); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}
