package palmares

// SeasonLength is the width of a normalized "2022-2023" season label.
const SeasonLength = 9

// Entry is a team's final position in a past season.
type Entry struct {
	Team    string
	Seizoen string
	Reeks   string
	Positie int
}

// NormalizeSeason truncates a season label to SeasonLength characters.
func NormalizeSeason(raw string) string {
	runes := []rune(raw)
	if len(runes) <= SeasonLength {
		return raw
	}
	return string(runes[:SeasonLength])
}
