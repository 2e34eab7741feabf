package lzvcup

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

const (
	rosterSelector    = "div.col-10.text-nowrap"
	scheduleSelector  = "ul.schedule-played li.item:not(.item-list-header), ul.schedule-future li.item:not(.item-list-header)"
	standingsSelector = "ul.standings li.item:not(.item-list-header)"
	itemColSelector   = "div.item-col"

	// UnscheduledMarker opens the tail of games without a date. That row and
	// everything after it are dropped.
	UnscheduledMarker = "yet to be scheduled"

	scoreInReview = "in review"
	scoreNone     = "-"

	scheduleCells  = 5
	standingsCells = 10
)

// The "when" cell reads like "ma 02/10/2023 20:30".
const (
	whenDayEnd    = 2
	whenDateStart = 3
	whenDateEnd   = 13
	whenHourStart = 14
	whenHourEnd   = 19
	siteDate      = "02/01/2006"
	isoDate       = "2006-01-02"
)

var scorePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// CompetitionPage parses the roster, schedule and standings of a
// competition page.
func (p Parser) CompetitionPage(doc *goquery.Document) (usecase.CompetitionPage, error) {
	games, err := p.Schedule(doc)
	if err != nil {
		return usecase.CompetitionPage{}, err
	}
	standings, err := p.Standings(doc)
	if err != nil {
		return usecase.CompetitionPage{}, err
	}
	return usecase.CompetitionPage{
		Roster:    p.Roster(doc),
		Schedule:  games,
		Standings: standings,
	}, nil
}

// Roster lists the team links of a competition in page order.
func (p Parser) Roster(doc *goquery.Document) []usecase.Link {
	var out []usecase.Link
	doc.Find(rosterSelector).Each(func(_ int, row *goquery.Selection) {
		a := row.Find("a").First()
		if a.Length() == 0 {
			return
		}
		url := p.hrefOf(a)
		if url == "" {
			return
		}
		out = append(out, usecase.Link{Name: cleanText(a.Text()), URL: url})
	})
	return out
}

// Schedule reads the played and future game lists in page order and stops
// at the first unscheduled row.
func (p Parser) Schedule(doc *goquery.Document) ([]schedule.Game, error) {
	var (
		out    []schedule.Game
		rowErr error
	)
	doc.Find(scheduleSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := cellTexts(row.Find(itemColSelector))
		if len(cells) > 0 && strings.EqualFold(cells[0], UnscheduledMarker) {
			return false
		}
		game, err := parseGame(cells)
		if err != nil {
			rowErr = crerr.Wrapf(err, "schedule row %d", i)
			return false
		}
		out = append(out, game)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}

func parseGame(cells []string) (schedule.Game, error) {
	if len(cells) < scheduleCells {
		return schedule.Game{}, crerr.Wrapf(usecase.ErrCoercion, "expected %d cells, got %d", scheduleCells, len(cells))
	}

	day, date, hour, err := splitWhen(cells[0])
	if err != nil {
		return schedule.Game{}, err
	}
	goals1, goals2, err := parseScore(cells[3])
	if err != nil {
		return schedule.Game{}, err
	}

	return schedule.Game{
		Sportshall: cells[1],
		Day:        day,
		Date:       date,
		Hour:       hour,
		Team1:      cells[2],
		Goals1:     goals1,
		Team2:      cells[4],
		Goals2:     goals2,
	}, nil
}

// splitWhen slices the compound day/date/hour cell at fixed offsets and
// normalizes the date to ISO form.
func splitWhen(raw string) (day, date, hour string, err error) {
	if len(raw) < whenHourEnd {
		return "", "", "", crerr.Wrapf(usecase.ErrCoercion, "schedule column when: %q is too short", raw)
	}
	day = raw[:whenDayEnd]
	hour = raw[whenHourStart:whenHourEnd]

	parsed, parseErr := time.Parse(siteDate, raw[whenDateStart:whenDateEnd])
	if parseErr != nil {
		return "", "", "", crerr.Wrapf(usecase.ErrCoercion, "schedule column date: %q is not a date", raw[whenDateStart:whenDateEnd])
	}
	return day, parsed.Format(isoDate), hour, nil
}

// parseScore splits an "H-A" score. Placeholders yield two nils so a game
// never carries half a score.
func parseScore(raw string) (*int, *int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == scoreNone || strings.EqualFold(raw, scoreInReview) {
		return nil, nil, nil
	}
	m := scorePattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil, crerr.Wrapf(usecase.ErrCoercion, "schedule column score: %q is not a score", raw)
	}
	home, _ := strconv.Atoi(m[1])
	away, _ := strconv.Atoi(m[2])
	return &home, &away, nil
}

// Standings parses the competition table. The rank is glued to the team
// name: one digit for the first nine rows, two digits after that.
func (p Parser) Standings(doc *goquery.Document) ([]standing.Standing, error) {
	var (
		out    []standing.Standing
		rowErr error
	)
	doc.Find(standingsSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		st, err := parseStandingRow(i, cellTexts(row.Find(itemColSelector)))
		if err != nil {
			rowErr = crerr.Wrapf(err, "standings row %d", i)
			return false
		}
		out = append(out, st)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}

func rankWidth(index int) int {
	if index < 9 {
		return 1
	}
	return 2
}

func parseStandingRow(index int, cells []string) (standing.Standing, error) {
	if len(cells) < standingsCells {
		return standing.Standing{}, crerr.Wrapf(usecase.ErrCoercion, "expected %d cells, got %d", standingsCells, len(cells))
	}

	width := rankWidth(index)
	name := cells[0]
	if len(name) < width {
		return standing.Standing{}, crerr.Wrapf(usecase.ErrCoercion, "standings column team: %q has no rank prefix", name)
	}
	position, err := parseIntCell("standings", "positie", name[:width])
	if err != nil {
		return standing.Standing{}, err
	}

	st := standing.Standing{
		Team:    strings.TrimSpace(name[width:]),
		Positie: position,
	}
	targets := []struct {
		column string
		dst    *int
	}{
		{"gespeeld", &st.Gespeeld},
		{"gewonnen", &st.Gewonnen},
		{"gelijk", &st.Gelijk},
		{"verloren", &st.Verloren},
		{"dg", &st.DG},
		{"dt", &st.DT},
		{"ds", &st.DS},
		{"punten", &st.Punten},
	}
	for i, target := range targets {
		v, err := parseIntCell("standings", target.column, cells[i+1])
		if err != nil {
			return standing.Standing{}, err
		}
		*target.dst = v
	}
	if st.Ptnm, err = parseFloatCell("standings", "ptnm", cells[9]); err != nil {
		return standing.Standing{}, err
	}
	return st, nil
}
