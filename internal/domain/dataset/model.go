package dataset

import (
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
)

// Table names as stored downstream.
const (
	TableCompetitions  = "competitions"
	TableTeams         = "teams"
	TableSchedules     = "schedules"
	TableStandings     = "standings"
	TablePlayerStats   = "stats_players"
	TablePlayerHistory = "stats_players_historical"
	TablePalmares      = "palmares"
	TableSportshalls   = "sportshalls"
	TableLocations     = "locations"
	TableLevels        = "levels"
)

// Tables lists every table in load order.
var Tables = []string{
	TableCompetitions,
	TableTeams,
	TableSchedules,
	TableStandings,
	TablePlayerStats,
	TablePlayerHistory,
	TablePalmares,
	TableSportshalls,
	TableLocations,
	TableLevels,
}

// Dataset is the complete output of one scrape run. Every table replaces the
// previous run's table wholesale.
type Dataset struct {
	Regions       []league.Region
	Competitions  []league.Competition
	Teams         []league.Team
	Schedules     []schedule.Game
	Standings     []standing.Standing
	PlayerStats   []player.Stat
	PlayerHistory []player.HistoricalEntry
	Palmares      []palmares.Entry
	Sportshalls   []sportshall.Sportshall
	Locations     []schedule.Location
	Levels        []level.Level
}

// RowCounts returns the number of rows per table.
func (d Dataset) RowCounts() map[string]int {
	return map[string]int{
		TableCompetitions:  len(d.Competitions),
		TableTeams:         len(d.Teams),
		TableSchedules:     len(d.Schedules),
		TableStandings:     len(d.Standings),
		TablePlayerStats:   len(d.PlayerStats),
		TablePlayerHistory: len(d.PlayerHistory),
		TablePalmares:      len(d.Palmares),
		TableSportshalls:   len(d.Sportshalls),
		TableLocations:     len(d.Locations),
		TableLevels:        len(d.Levels),
	}
}
