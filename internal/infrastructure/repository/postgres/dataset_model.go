package postgres

import (
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
)

type competitionInsertModel struct {
	Area        string `db:"area"`
	Region      string `db:"region"`
	Competition string `db:"competition"`
	URL         string `db:"url"`
}

func competitionRow(c league.Competition) competitionInsertModel {
	return competitionInsertModel{Area: c.Area, Region: c.Region, Competition: c.Name, URL: c.URL}
}

type teamInsertModel struct {
	Area        string `db:"area"`
	Region      string `db:"region"`
	Competition string `db:"competition"`
	Team        string `db:"team"`
	URL         string `db:"url"`
}

func teamRow(t league.Team) teamInsertModel {
	return teamInsertModel{Area: t.Area, Region: t.Region, Competition: t.Competition, Team: t.Name, URL: t.URL}
}

type scheduleInsertModel struct {
	Area        string `db:"area"`
	Region      string `db:"region"`
	Competition string `db:"competition"`
	Sportshall  string `db:"sportshall"`
	Day         string `db:"day"`
	Date        string `db:"date"`
	Hour        string `db:"hour"`
	Team1       string `db:"team1"`
	Goals1      *int   `db:"goals1"`
	Team2       string `db:"team2"`
	Goals2      *int   `db:"goals2"`
}

func scheduleRow(g schedule.Game) scheduleInsertModel {
	return scheduleInsertModel{
		Area:        g.Area,
		Region:      g.Region,
		Competition: g.Competition,
		Sportshall:  g.Sportshall,
		Day:         g.Day,
		Date:        g.Date,
		Hour:        g.Hour,
		Team1:       g.Team1,
		Goals1:      g.Goals1,
		Team2:       g.Team2,
		Goals2:      g.Goals2,
	}
}

type standingInsertModel struct {
	Area        string  `db:"area"`
	Region      string  `db:"region"`
	Competition string  `db:"competition"`
	Team        string  `db:"team"`
	Gespeeld    int     `db:"gespeeld"`
	Gewonnen    int     `db:"gewonnen"`
	Gelijk      int     `db:"gelijk"`
	Verloren    int     `db:"verloren"`
	DG          int     `db:"dg"`
	DT          int     `db:"dt"`
	DS          int     `db:"ds"`
	Punten      int     `db:"punten"`
	Ptnm        float64 `db:"ptnm"`
	Positie     int     `db:"positie"`
}

func standingRow(s standing.Standing) standingInsertModel {
	return standingInsertModel{
		Area:        s.Area,
		Region:      s.Region,
		Competition: s.Competition,
		Team:        s.Team,
		Gespeeld:    s.Gespeeld,
		Gewonnen:    s.Gewonnen,
		Gelijk:      s.Gelijk,
		Verloren:    s.Verloren,
		DG:          s.DG,
		DT:          s.DT,
		DS:          s.DS,
		Punten:      s.Punten,
		Ptnm:        s.Ptnm,
		Positie:     s.Positie,
	}
}

type playerStatInsertModel struct {
	Name        string `db:"name"`
	Team        string `db:"team"`
	Number      *int   `db:"number"`
	URL         string `db:"url"`
	Fairplay    string `db:"fairplay"`
	Wedstrijden int    `db:"wedstrijden"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
}

func playerStatRow(s player.Stat) playerStatInsertModel {
	return playerStatInsertModel{
		Name:        s.Name,
		Team:        s.Team,
		Number:      s.Number,
		URL:         s.URL,
		Fairplay:    s.Fairplay,
		Wedstrijden: s.Wedstrijden,
		Goals:       s.Goals,
		Assists:     s.Assists,
	}
}

type playerHistoryInsertModel struct {
	Name        string `db:"name"`
	URL         string `db:"url"`
	Team        string `db:"team"`
	Seizoen     string `db:"seizoen"`
	Reeks       string `db:"reeks"`
	Stand       string `db:"stand"`
	Wedstrijden int    `db:"wedstrijden"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
}

func playerHistoryRow(h player.HistoricalEntry) playerHistoryInsertModel {
	return playerHistoryInsertModel{
		Name:        h.Name,
		URL:         h.URL,
		Team:        h.Team,
		Seizoen:     h.Seizoen,
		Reeks:       h.Reeks,
		Stand:       h.Stand,
		Wedstrijden: h.Wedstrijden,
		Goals:       h.Goals,
		Assists:     h.Assists,
	}
}

type palmaresInsertModel struct {
	Team    string `db:"team"`
	Seizoen string `db:"seizoen"`
	Reeks   string `db:"reeks"`
	Positie int    `db:"positie"`
}

func palmaresRow(p palmares.Entry) palmaresInsertModel {
	return palmaresInsertModel{Team: p.Team, Seizoen: p.Seizoen, Reeks: p.Reeks, Positie: p.Positie}
}

type sportshallInsertModel struct {
	Area          string   `db:"area"`
	Region        string   `db:"region"`
	Sportshall    string   `db:"sportshall"`
	URLSportshall *string  `db:"url_sportshall"`
	Address       *string  `db:"address"`
	Phone         *string  `db:"phone"`
	Email         *string  `db:"email"`
	URLRegion     string   `db:"url_region"`
	Latitude      *float64 `db:"latitude"`
	Longitude     *float64 `db:"longitude"`
}

func sportshallRow(s sportshall.Sportshall) sportshallInsertModel {
	return sportshallInsertModel{
		Area:          s.Area,
		Region:        s.Region,
		Sportshall:    s.Name,
		URLSportshall: s.URL,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		URLRegion:     s.RegionURL,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
	}
}

type locationInsertModel struct {
	Team       string `db:"team"`
	Sportshall string `db:"sportshall"`
}

func locationRow(l schedule.Location) locationInsertModel {
	return locationInsertModel{Team: l.Team, Sportshall: l.Sportshall}
}

type levelInsertModel struct {
	Team      string `db:"team"`
	Level     int    `db:"level"`
	LevelName string `db:"level_name"`
}

func levelRow(l level.Level) levelInsertModel {
	return levelInsertModel{Team: l.Team, Level: l.Tier, LevelName: l.Name}
}
