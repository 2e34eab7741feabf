package player

// Stat is a player's line in a team's current-season roster.
type Stat struct {
	Name        string
	Team        string
	Number      *int
	URL         string
	Fairplay    string
	Wedstrijden int
	Goals       int
	Assists     int
}

// Ref identifies a player profile. URL is the only reliable identity; Name
// is carried for reporting.
type Ref struct {
	Name string
	URL  string
}

// HistoricalEntry is one season row of a player's profile page.
type HistoricalEntry struct {
	Name        string
	URL         string
	Team        string
	Seizoen     string
	Reeks       string
	Stand       string
	Wedstrijden int
	Goals       int
	Assists     int
}

// DistinctRefs returns each (name, url) pair once, in first-seen order.
// Stats without a profile URL are skipped.
func DistinctRefs(stats []Stat) []Ref {
	seen := make(map[Ref]struct{}, len(stats))
	out := make([]Ref, 0, len(stats))
	for _, s := range stats {
		if s.URL == "" {
			continue
		}
		ref := Ref{Name: s.Name, URL: s.URL}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
