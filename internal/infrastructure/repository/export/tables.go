package export

import (
	"strconv"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
)

type csvTable struct {
	name   string
	header []string
	rows   func(data dataset.Dataset) [][]string
}

// csvTables lists the exported tables with their column layout.
var csvTables = []csvTable{
	{
		name:   dataset.TableCompetitions,
		header: []string{"area", "region", "competition", "url"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Competitions))
			for _, c := range d.Competitions {
				out = append(out, []string{c.Area, c.Region, c.Name, c.URL})
			}
			return out
		},
	},
	{
		name:   dataset.TableTeams,
		header: []string{"area", "region", "competition", "team", "url"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Teams))
			for _, t := range d.Teams {
				out = append(out, []string{t.Area, t.Region, t.Competition, t.Name, t.URL})
			}
			return out
		},
	},
	{
		name:   dataset.TableSchedules,
		header: []string{"area", "region", "competition", "sportshall", "day", "date", "hour", "team1", "goals1", "team2", "goals2"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Schedules))
			for _, g := range d.Schedules {
				out = append(out, []string{
					g.Area, g.Region, g.Competition, g.Sportshall, g.Day, g.Date, g.Hour,
					g.Team1, optInt(g.Goals1), g.Team2, optInt(g.Goals2),
				})
			}
			return out
		},
	},
	{
		name: dataset.TableStandings,
		header: []string{
			"area", "region", "competition", "team", "gespeeld", "gewonnen", "gelijk",
			"verloren", "dg", "dt", "ds", "punten", "ptnm", "positie",
		},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Standings))
			for _, s := range d.Standings {
				out = append(out, []string{
					s.Area, s.Region, s.Competition, s.Team,
					strconv.Itoa(s.Gespeeld), strconv.Itoa(s.Gewonnen), strconv.Itoa(s.Gelijk),
					strconv.Itoa(s.Verloren), strconv.Itoa(s.DG), strconv.Itoa(s.DT), strconv.Itoa(s.DS),
					strconv.Itoa(s.Punten), formatFloat(s.Ptnm), strconv.Itoa(s.Positie),
				})
			}
			return out
		},
	},
	{
		name:   dataset.TablePlayerStats,
		header: []string{"name", "team", "number", "url", "fairplay", "wedstrijden", "goals", "assists"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.PlayerStats))
			for _, s := range d.PlayerStats {
				out = append(out, []string{
					s.Name, s.Team, optInt(s.Number), s.URL, s.Fairplay,
					strconv.Itoa(s.Wedstrijden), strconv.Itoa(s.Goals), strconv.Itoa(s.Assists),
				})
			}
			return out
		},
	},
	{
		name:   dataset.TablePlayerHistory,
		header: []string{"name", "url", "team", "seizoen", "reeks", "stand", "wedstrijden", "goals", "assists"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.PlayerHistory))
			for _, h := range d.PlayerHistory {
				out = append(out, []string{
					h.Name, h.URL, h.Team, h.Seizoen, h.Reeks, h.Stand,
					strconv.Itoa(h.Wedstrijden), strconv.Itoa(h.Goals), strconv.Itoa(h.Assists),
				})
			}
			return out
		},
	},
	{
		name:   dataset.TablePalmares,
		header: []string{"team", "seizoen", "reeks", "positie"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Palmares))
			for _, p := range d.Palmares {
				out = append(out, []string{p.Team, p.Seizoen, p.Reeks, strconv.Itoa(p.Positie)})
			}
			return out
		},
	},
	{
		name: dataset.TableSportshalls,
		header: []string{
			"area", "region", "sportshall", "url_sportshall", "address", "phone",
			"email", "url_region", "latitude", "longitude",
		},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Sportshalls))
			for _, s := range d.Sportshalls {
				out = append(out, []string{
					s.Area, s.Region, s.Name, optString(s.URL), optString(s.Address), optString(s.Phone),
					optString(s.Email), s.RegionURL, optFloat(s.Latitude), optFloat(s.Longitude),
				})
			}
			return out
		},
	},
	{
		name:   dataset.TableLocations,
		header: []string{"team", "sportshall"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Locations))
			for _, l := range d.Locations {
				out = append(out, []string{l.Team, l.Sportshall})
			}
			return out
		},
	},
	{
		name:   dataset.TableLevels,
		header: []string{"team", "level", "level_name"},
		rows: func(d dataset.Dataset) [][]string {
			out := make([][]string, 0, len(d.Levels))
			for _, l := range d.Levels {
				out = append(out, []string{l.Team, strconv.Itoa(l.Tier), l.Name})
			}
			return out
		},
	},
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
