package lzvcup

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

var textCleaner = strings.NewReplacer("\n", "", "\t", "", "\u00a0", " ")

// cleanText strips the layout whitespace the site wraps around cell values.
func cleanText(s string) string {
	return strings.TrimSpace(textCleaner.Replace(s))
}

// Parser turns league site documents into rows. BaseURL resolves the
// site-relative links found on the pages.
type Parser struct {
	BaseURL string
}

// ResolveURL drops one leading slash from a relative href and joins it to
// the base URL. Absolute URLs are returned unchanged.
func (p Parser) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	href = strings.TrimPrefix(href, "/")
	return strings.TrimRight(p.BaseURL, "/") + "/" + href
}

func (p Parser) hrefOf(sel *goquery.Selection) string {
	href, ok := sel.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}
	return p.ResolveURL(href)
}

func parseIntCell(table, column, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, crerr.Wrapf(usecase.ErrCoercion, "%s column %s: %q is not an integer", table, column, raw)
	}
	return v, nil
}

func parseFloatCell(table, column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0, crerr.Wrapf(usecase.ErrCoercion, "%s column %s: %q is not a number", table, column, raw)
	}
	return v, nil
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cleanText(cell.Text()))
	})
	return out
}
