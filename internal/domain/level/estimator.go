package level

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
)

const (
	womenWeight    = 0.7
	veteranWeight  = 0.8
	topDivision    = 1.0
	bottomDivision = 1.0 / 3.0
	otherDivision  = 2.0 / 3.0

	lowerCut = 0.20
	upperCut = 0.80
)

// Estimator assigns skill tiers from the current standings and palmares.
type Estimator struct {
	markers Markers
}

func NewEstimator(markers Markers) *Estimator {
	return &Estimator{markers: markers}
}

// Score is the composite score of one standings row.
type Score struct {
	Team  string
	Value float64
}

// Scores computes the composite score per standings row, in input order.
func (e *Estimator) Scores(rows []standing.Standing, history []palmares.Entry) []Score {
	if len(rows) == 0 {
		return nil
	}

	seasons := make(map[string]float64)
	positionSum := make(map[string]float64)
	for _, h := range history {
		seasons[h.Team]++
		positionSum[h.Team] += float64(h.Positie)
	}

	n := len(rows)
	position := make([]float64, n)
	ptnm := make([]float64, n)
	played := make([]float64, n)
	avgPosition := make([]float64, n)
	for i, row := range rows {
		position[i] = -float64(row.Positie)
		ptnm[i] = row.Ptnm
		if count, ok := seasons[row.Team]; ok {
			played[i] = count
			avgPosition[i] = positionSum[row.Team] / count
		} else {
			played[i] = math.NaN()
			avgPosition[i] = math.NaN()
		}
	}
	fillMissingWithMedian(played)
	fillMissingWithMedian(avgPosition)
	for i := range avgPosition {
		avgPosition[i] = -avgPosition[i]
	}

	positionRank := denseRankPct(position)
	ptnmRank := denseRankPct(ptnm)
	playedRank := denseRankPct(played)
	historyRank := denseRankPct(avgPosition)

	out := make([]Score, n)
	for i, row := range rows {
		out[i] = Score{
			Team: row.Team,
			Value: e.genderWeight(row.Region) +
				e.veteranWeight(row.Competition) +
				e.divisionWeight(row.Competition) +
				positionRank[i] + ptnmRank[i] + playedRank[i] + historyRank[i],
		}
	}
	return out
}

// Estimate buckets the row scores into tiers and returns one level per team
// in first-seen order. A team listed in several competitions keeps its best
// scoring row.
func (e *Estimator) Estimate(rows []standing.Standing, history []palmares.Entry) []Level {
	scores := e.Scores(rows, history)
	if len(scores) == 0 {
		return nil
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Value
	}
	tiers := bucket(values)

	best := make(map[string]int, len(scores))
	order := make([]string, 0, len(scores))
	for i, s := range scores {
		j, ok := best[s.Team]
		if !ok {
			order = append(order, s.Team)
			best[s.Team] = i
			continue
		}
		if s.Value > scores[j].Value {
			best[s.Team] = i
		}
	}

	out := make([]Level, 0, len(order))
	for _, team := range order {
		tier := tiers[best[team]]
		out = append(out, Level{Team: team, Tier: tier, Name: Name(tier)})
	}
	return out
}

func (e *Estimator) genderWeight(region string) float64 {
	if containsFold(region, e.markers.Women) {
		return womenWeight
	}
	return 1
}

func (e *Estimator) veteranWeight(competition string) float64 {
	if containsFold(competition, e.markers.Veterans) {
		return veteranWeight
	}
	return 1
}

func (e *Estimator) divisionWeight(competition string) float64 {
	if containsFold(competition, e.markers.TopTier) {
		return topDivision
	}
	for _, marker := range e.markers.BottomTiers {
		if containsFold(competition, marker) {
			return bottomDivision
		}
	}
	return otherDivision
}

// bucket maps each score to a tier using the 20% and 80% quantiles: scores
// up to the lower cut are the bottom tier, above the upper cut the top tier.
func bucket(values []float64) []int {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	out := make([]int, len(values))
	if sorted[0] == sorted[len(sorted)-1] {
		for i := range out {
			out[i] = TierMiddle
		}
		return out
	}

	lo := quantile(sorted, lowerCut)
	hi := quantile(sorted, upperCut)
	for i, v := range values {
		switch {
		case v <= lo:
			out[i] = TierBottom
		case v <= hi:
			out[i] = TierMiddle
		default:
			out[i] = TierTop
		}
	}
	return out
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// denseRankPct ranks values ascending without gaps and divides by the highest
// rank, so the largest value scores 1.
func denseRankPct(values []float64) []float64 {
	unique := append([]float64(nil), values...)
	sort.Float64s(unique)
	unique = compactFloats(unique)

	rank := make(map[float64]int, len(unique))
	for i, v := range unique {
		rank[v] = i + 1
	}

	out := make([]float64, len(values))
	maxRank := float64(len(unique))
	for i, v := range values {
		out[i] = float64(rank[v]) / maxRank
	}
	return out
}

func compactFloats(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// fillMissingWithMedian replaces NaN entries with the median of the others.
// When every entry is missing they all become zero.
func fillMissingWithMedian(values []float64) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	fill := 0.0
	if len(present) > 0 {
		sort.Float64s(present)
		mid := len(present) / 2
		if len(present)%2 == 0 {
			fill = (present[mid-1] + present[mid]) / 2
		} else {
			fill = present[mid]
		}
	}
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = fill
		}
	}
}

func containsFold(label, marker string) bool {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(marker))
}
