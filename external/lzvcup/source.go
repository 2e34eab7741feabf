package lzvcup

import (
	"context"
	"fmt"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

var (
	_ usecase.LeagueSource        = (*Client)(nil)
	_ usecase.PlayerHistorySource = (*Client)(nil)
)

func (c *Client) RegionCards(ctx context.Context, areaURL string) ([]usecase.RegionCard, error) {
	doc, err := c.fetchDocument(ctx, c.ResolveURL(areaURL))
	if err != nil {
		return nil, fmt.Errorf("fetch area page: %w", err)
	}
	return c.parser.RegionCards(doc)
}

func (c *Client) CompetitionPage(ctx context.Context, competitionURL string) (usecase.CompetitionPage, error) {
	doc, err := c.fetchDocument(ctx, competitionURL)
	if err != nil {
		return usecase.CompetitionPage{}, fmt.Errorf("fetch competition page: %w", err)
	}
	return c.parser.CompetitionPage(doc)
}

func (c *Client) TeamPage(ctx context.Context, teamURL string) (usecase.TeamPage, error) {
	doc, err := c.fetchDocument(ctx, teamURL)
	if err != nil {
		return usecase.TeamPage{}, fmt.Errorf("fetch team page: %w", err)
	}
	return c.parser.TeamPage(doc)
}

func (c *Client) Sportshalls(ctx context.Context, listingURL string) ([]sportshall.Sportshall, error) {
	doc, err := c.fetchDocument(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sportshalls page: %w", err)
	}
	halls, err := c.parser.Sportshalls(doc)
	if err != nil {
		return nil, err
	}
	for i := range halls {
		halls[i].RegionURL = listingURL
	}
	return halls, nil
}

// PlayerHistory is called from the history worker pool.
func (c *Client) PlayerHistory(ctx context.Context, ref player.Ref) ([]player.HistoricalEntry, error) {
	doc, err := c.fetchDocument(ctx, ref.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch player profile: %w", err)
	}
	return c.parser.PlayerHistory(doc)
}
