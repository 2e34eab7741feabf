package geocode

import (
	"context"
	"strings"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/cache"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

// Lookup is a remembered geocoding answer. Misses are remembered too so a
// venue nobody can find is not searched again on the next run.
type Lookup struct {
	Coordinates sportshall.Coordinates `json:"coordinates"`
	Found       bool                   `json:"found"`
}

// CoordinateCache persists lookups between runs.
type CoordinateCache interface {
	Get(ctx context.Context, key string) (Lookup, bool, error)
	Set(ctx context.Context, key string, value Lookup) error
}

// Cached puts an in-process memo and an optional persistent cache in front
// of another geocoder.
type Cached struct {
	next    usecase.Geocoder
	persist CoordinateCache
	memo    *cache.Store[Lookup]
	logger  *logging.Logger
}

var _ usecase.Geocoder = (*Cached)(nil)

func NewCached(next usecase.Geocoder, persist CoordinateCache, logger *logging.Logger) *Cached {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cached{
		next:    next,
		persist: persist,
		memo:    cache.NewStore[Lookup](0),
		logger:  logger,
	}
}

func (c *Cached) Locate(ctx context.Context, address, fallback, area string) (sportshall.Coordinates, bool, error) {
	key := CacheKey(address, fallback, area)
	lookup, err := c.memo.GetOrLoad(ctx, key, func(ctx context.Context) (Lookup, error) {
		if c.persist != nil {
			cached, ok, err := c.persist.Get(ctx, key)
			if err != nil {
				c.logger.WarnContext(ctx, "coordinate cache read failed", "key", key, "error", err)
			} else if ok {
				return cached, nil
			}
		}

		coords, found, err := c.next.Locate(ctx, address, fallback, area)
		if err != nil {
			return Lookup{}, err
		}
		fresh := Lookup{Coordinates: coords, Found: found}
		if c.persist != nil {
			if err := c.persist.Set(ctx, key, fresh); err != nil {
				c.logger.WarnContext(ctx, "coordinate cache write failed", "key", key, "error", err)
			}
		}
		return fresh, nil
	})
	if err != nil {
		return sportshall.Coordinates{}, false, err
	}
	return lookup.Coordinates, lookup.Found, nil
}

// CacheKey normalizes the inputs of one lookup.
func CacheKey(address, fallback, area string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return norm(area) + "|" + norm(address) + "|" + norm(fallback)
}
