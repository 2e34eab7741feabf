package lzvcup

import (
	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

const (
	regionHeaderSelector = "button.btn.btn-link.btn-block.text-left.collapsed"
	regionBlockSelector  = "div.card-body.row"
	regionLinkSelector   = "a.btn.btn-outline-primary"
	sportshallsLabel     = "Sporthallen"
)

// RegionCards pairs every region header of an area page with its content
// block. Headers and blocks must line up one to one.
func (p Parser) RegionCards(doc *goquery.Document) ([]usecase.RegionCard, error) {
	headers := doc.Find(regionHeaderSelector)
	blocks := doc.Find(regionBlockSelector)
	if headers.Length() != blocks.Length() {
		return nil, crerr.Wrapf(usecase.ErrStructuralMismatch,
			"area page has %d region headers and %d content blocks", headers.Length(), blocks.Length())
	}

	out := make([]usecase.RegionCard, 0, headers.Length())
	headers.Each(func(i int, header *goquery.Selection) {
		card := usecase.RegionCard{Region: cleanText(header.Text())}
		blocks.Eq(i).Find(regionLinkSelector).Each(func(_ int, a *goquery.Selection) {
			label := cleanText(a.Text())
			url := p.hrefOf(a)
			if url == "" {
				return
			}
			if label == sportshallsLabel {
				if card.SportshallsURL == "" {
					card.SportshallsURL = url
				}
				return
			}
			card.Competitions = append(card.Competitions, usecase.Link{Name: label, URL: url})
		})
		out = append(out, card)
	})
	return out, nil
}
