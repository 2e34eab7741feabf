package schedule

// Game is one schedule row. Goals1 and Goals2 are both nil or both set.
type Game struct {
	Area        string
	Region      string
	Competition string
	Sportshall  string
	Day         string
	Date        string
	Hour        string
	Team1       string
	Goals1      *int
	Team2       string
	Goals2      *int
}

// Played reports whether the game has a final score.
func (g Game) Played() bool {
	return g.Goals1 != nil && g.Goals2 != nil
}

// Location links a team to a sportshall it plays home games in.
type Location struct {
	Team       string
	Sportshall string
}

// DeriveLocations returns the distinct (home team, sportshall) pairs in
// first-seen order. Games without a venue are ignored.
func DeriveLocations(games []Game) []Location {
	seen := make(map[Location]struct{}, len(games))
	out := make([]Location, 0)
	for _, g := range games {
		if g.Team1 == "" || g.Sportshall == "" {
			continue
		}
		loc := Location{Team: g.Team1, Sportshall: g.Sportshall}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out
}
