package lzvcup

import (
	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

// Profile table columns: Seizoen, Ploeg, Wedstrijden, Goals, Assists, Reeks, Stand.
const historyCells = 7

// PlayerHistory parses the season table of a player profile. Name and URL
// are filled in by the caller.
func (p Parser) PlayerHistory(doc *goquery.Document) ([]player.HistoricalEntry, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, crerr.Wrapf(usecase.ErrMissingData, "player history table not found")
	}

	var (
		out    []player.HistoricalEntry
		rowErr error
	)
	table.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := cellTexts(row.Find("td"))
		if len(cells) < historyCells {
			rowErr = crerr.Wrapf(usecase.ErrStructuralMismatch,
				"player history row %d has %d cells, want %d", i, len(cells), historyCells)
			return false
		}

		entry := player.HistoricalEntry{
			Seizoen: cells[0],
			Team:    cells[1],
			Reeks:   cells[5],
			Stand:   cells[6],
		}
		var err error
		if entry.Wedstrijden, err = parseIntCell("stats_players_historical", "wedstrijden", cells[2]); err != nil {
			rowErr = err
			return false
		}
		if entry.Goals, err = parseIntCell("stats_players_historical", "goals", cells[3]); err != nil {
			rowErr = err
			return false
		}
		if entry.Assists, err = parseIntCell("stats_players_historical", "assists", cells[4]); err != nil {
			rowErr = err
			return false
		}
		out = append(out, entry)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}
