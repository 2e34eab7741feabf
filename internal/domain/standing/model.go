package standing

// Standing is one row of a competition table. Positie is the rank printed
// in front of the team name.
type Standing struct {
	Area        string
	Region      string
	Competition string
	Team        string
	Gespeeld    int
	Gewonnen    int
	Gelijk      int
	Verloren    int
	DG          int
	DT          int
	DS          int
	Punten      int
	Ptnm        float64
	Positie     int
}
