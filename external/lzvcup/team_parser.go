package lzvcup

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

const (
	statsListSelector     = "ul.item-list.striped"
	statsHeaderSelector   = "li.item.item-list-header div.item-col-header"
	statsRowSelector      = "li.item"
	statsCellSelector     = `div[class^="item-col col-"]`
	palmaresSelector      = "div.palmares"
	palmaresHeaderSel     = "div.item-col-header"
	palmaresValueSelector = "div.item-col"
	palmaresColumns       = 3
)

// Stats list header labels, lower-cased.
const (
	colNumber      = "#"
	colName        = "teamleden"
	colFairplay    = "fairplay"
	colWedstrijden = "wedstrijden"
	colGoals       = "goals"
	colAssists     = "assists"
)

// TeamPage parses both optional tables of a team page. An absent table is
// reported through its Section; a malformed one fails the whole page.
func (p Parser) TeamPage(doc *goquery.Document) (usecase.TeamPage, error) {
	var page usecase.TeamPage

	stats, err := p.PlayerStats(doc)
	switch {
	case err == nil:
		page.Stats = usecase.PresentSection(stats)
	case errors.Is(err, usecase.ErrMissingData):
		page.Stats = usecase.AbsentSection[player.Stat](err)
	default:
		return usecase.TeamPage{}, err
	}

	entries, err := p.Palmares(doc)
	switch {
	case err == nil:
		page.Palmares = usecase.PresentSection(entries)
	case errors.Is(err, usecase.ErrMissingData):
		page.Palmares = usecase.AbsentSection[palmares.Entry](err)
	default:
		return usecase.TeamPage{}, err
	}
	return page, nil
}

// PlayerStats parses the roster table with the current season statistics.
// The palmares block uses the same list markup and is never matched.
func (p Parser) PlayerStats(doc *goquery.Document) ([]player.Stat, error) {
	list := doc.Find(statsListSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest(palmaresSelector).Length() == 0
	}).First()
	if list.Length() == 0 {
		return nil, crerr.Wrapf(usecase.ErrMissingData, "player stats list not found")
	}

	columns := make(map[string]int)
	list.Find(statsHeaderSelector).Each(func(i int, h *goquery.Selection) {
		label := strings.ToLower(cleanText(h.Text()))
		if _, ok := columns[label]; !ok {
			columns[label] = i
		}
	})
	for _, required := range []string{colName, colWedstrijden, colGoals, colAssists} {
		if _, ok := columns[required]; !ok {
			return nil, crerr.Wrapf(usecase.ErrStructuralMismatch, "player stats header has no %q column", required)
		}
	}

	var (
		out    []player.Stat
		urls   = make(map[string]string)
		rowErr error
	)
	list.Find(statsRowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		cellSel := row.Find(statsCellSelector)
		cells := cellTexts(cellSel)
		stat, err := parseStatRow(columns, cells)
		if err != nil {
			rowErr = crerr.Wrapf(err, "player stats row %d", i)
			return false
		}
		if href := p.hrefOf(cellSel.Eq(1).Find("a").First()); href != "" {
			if _, seen := urls[stat.Name]; !seen {
				urls[stat.Name] = href
			}
		}
		out = append(out, stat)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	for i := range out {
		out[i].URL = urls[out[i].Name]
	}
	return out, nil
}

func parseStatRow(columns map[string]int, cells []string) (player.Stat, error) {
	cell := func(label string) (string, bool) {
		idx, ok := columns[label]
		if !ok || idx >= len(cells) {
			return "", false
		}
		return cells[idx], true
	}

	name, ok := cell(colName)
	if !ok {
		return player.Stat{}, crerr.Wrapf(usecase.ErrCoercion, "player stats column %s: cell missing", colName)
	}
	stat := player.Stat{Name: name}
	stat.Fairplay, _ = cell(colFairplay)

	if raw, ok := cell(colNumber); ok && raw != "" {
		if n, err := parseIntCell("stats_players", "number", raw); err == nil {
			stat.Number = &n
		}
	}

	targets := []struct {
		column string
		dst    *int
	}{
		{colWedstrijden, &stat.Wedstrijden},
		{colGoals, &stat.Goals},
		{colAssists, &stat.Assists},
	}
	for _, target := range targets {
		raw, _ := cell(target.column)
		v, err := parseIntCell("stats_players", target.column, raw)
		if err != nil {
			return player.Stat{}, err
		}
		*target.dst = v
	}
	return stat, nil
}

// Palmares parses the past seasons block. The first header cell labels an
// empty column and carries no values.
func (p Parser) Palmares(doc *goquery.Document) ([]palmares.Entry, error) {
	section := doc.Find(palmaresSelector).First()
	if section.Length() == 0 {
		return nil, crerr.Wrapf(usecase.ErrMissingData, "palmares section not found")
	}

	headers := cellTexts(section.Find(palmaresHeaderSel))
	if len(headers) > 0 {
		headers = headers[1:]
	}
	if len(headers) != palmaresColumns {
		return nil, crerr.Wrapf(usecase.ErrStructuralMismatch,
			"palmares has %d columns, want %d", len(headers), palmaresColumns)
	}

	values := cellTexts(section.Find(palmaresValueSelector))
	if len(values)%palmaresColumns != 0 {
		return nil, crerr.Wrapf(usecase.ErrCoercion,
			"palmares has %d values, not a multiple of %d", len(values), palmaresColumns)
	}

	out := make([]palmares.Entry, 0, len(values)/palmaresColumns)
	for i := 0; i < len(values); i += palmaresColumns {
		position, err := parseIntCell("palmares", "positie", values[i+2])
		if err != nil {
			return nil, err
		}
		out = append(out, palmares.Entry{
			Seizoen: palmares.NormalizeSeason(values[i]),
			Reeks:   values[i+1],
			Positie: position,
		})
	}
	return out, nil
}
