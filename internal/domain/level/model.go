package level

const (
	TierTop    = 1
	TierMiddle = 2
	TierBottom = 3
)

var tierNames = map[int]string{
	TierTop:    "Courtois 💪💪💪",
	TierMiddle: "Casteels 💪💪",
	TierBottom: "Mignolet 💪",
}

// Level is a team's derived skill tier.
type Level struct {
	Team string
	Tier int
	Name string
}

// Name returns the display label of a tier, or "" for an unknown tier.
func Name(tier int) string {
	return tierNames[tier]
}

// Markers are the case-insensitive label fragments the estimator looks for
// in region and competition names.
type Markers struct {
	Women       string `validate:"required"`
	Veterans    string `validate:"required"`
	TopTier     string `validate:"required"`
	BottomTiers [2]string
}

func DefaultMarkers() Markers {
	return Markers{
		Women:       "dames",
		Veterans:    "veteranen",
		TopTier:     "1e klasse",
		BottomTiers: [2]string{"4e klasse", "5e klasse"},
	}
}
