package lzvcup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
)

const (
	cardSelector      = "div.card"
	cardTitleSelector = ".card-title"
	cardTextSelector  = ".card-text"
	cardFields        = 4
	duplicatePhoneIdx = 2
)

// Sportshalls parses the venue cards of a region listing. Area, region and
// listing URL are left for the caller.
func (p Parser) Sportshalls(doc *goquery.Document) ([]sportshall.Sportshall, error) {
	var out []sportshall.Sportshall
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		title := card.Find(cardTitleSelector).First()
		if title.Length() == 0 {
			return
		}
		fields := normalizeCardLines(cardLines(card.Find(cardTextSelector).First()))
		out = append(out, sportshall.Sportshall{
			Name:    hallName(cleanText(title.Text())),
			Address: fields[0],
			Phone:   fields[1],
			Email:   fields[2],
			URL:     fields[3],
		})
	})
	return out, nil
}

// hallName keeps what follows the first colon of "Label: Name".
func hallName(title string) string {
	if _, name, ok := strings.Cut(title, ":"); ok {
		return strings.TrimSpace(name)
	}
	return title
}

// cardLines splits a card text block at <br> elements and newlines.
func cardLines(text *goquery.Selection) []string {
	var (
		lines   []string
		current strings.Builder
	)
	flush := func() {
		if line := cleanText(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	text.Contents().Each(func(_ int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "br":
			flush()
		case "#text":
			for i, part := range strings.Split(node.Text(), "\n") {
				if i > 0 {
					flush()
				}
				current.WriteString(part)
			}
		default:
			current.WriteString(node.Text())
		}
	})
	flush()
	return lines
}

// normalizeCardLines maps the free-form lines of a card onto address,
// phone, email and url. Cards print a second phone number at index 2 and
// leave out lines they have no value for.
func normalizeCardLines(lines []string) [cardFields]*string {
	fields := make([]*string, 0, len(lines))
	for i := range lines {
		fields = append(fields, &lines[i])
	}
	for len(fields) > cardFields {
		fields = append(fields[:duplicatePhoneIdx], fields[duplicatePhoneIdx+1:]...)
	}

	if len(fields) < cardFields {
		switch {
		case len(fields) > 1 && strings.Contains(*fields[1], "@"):
			fields = insertNil(fields, 1)
		case len(fields) > 2 && !strings.Contains(*fields[2], "@"):
			fields = insertNil(fields, 2)
		}
	}

	var out [cardFields]*string
	copy(out[:], fields)
	return out
}

func insertNil(fields []*string, at int) []*string {
	fields = append(fields, nil)
	copy(fields[at+1:], fields[at:])
	fields[at] = nil
	return fields
}
