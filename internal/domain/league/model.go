package league

// Area is a top-level partition of the league, e.g. a province.
type Area struct {
	Name string
	URL  string
}

// Region groups competitions inside an area. Names are only unique per area.
type Region struct {
	Area           string
	Name           string
	SportshallsURL string
}

// Competition is identified by (Area, Region, Name); the same name can
// appear under several regions.
type Competition struct {
	Area   string
	Region string
	Name   string
	URL    string
}

// Team is one roster entry of a competition. Duplicate teams across
// competitions are kept as they appear on the site.
type Team struct {
	Area        string
	Region      string
	Competition string
	Name        string
	URL         string
}
