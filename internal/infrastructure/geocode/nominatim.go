package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultCountry      = "Belgium"
	defaultUserAgent    = "lzvcup-scraper/1.0"
	defaultTimeout      = 10 * time.Second
)

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Country   string
	// RequestsPerSecond defaults to 1, the public instance's usage policy.
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Nominatim resolves addresses with the OpenStreetMap search API.
type Nominatim struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	country    string
	limiter    *rate.Limiter
}

func NewNominatim(cfg NominatimConfig) *Nominatim {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return "geocode " + r.URL.Path
				}),
			),
		}
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Nominatim{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(firstNonEmpty(cfg.BaseURL, DefaultNominatimURL), "/"),
		userAgent:  firstNonEmpty(cfg.UserAgent, defaultUserAgent),
		country:    firstNonEmpty(cfg.Country, defaultCountry),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Locate searches "<address>, <area>, <country>" and, when that finds
// nothing, the same query built from fallback.
func (n *Nominatim) Locate(ctx context.Context, address, fallback, area string) (sportshall.Coordinates, bool, error) {
	coords, ok, err := n.search(ctx, n.query(address, area))
	if err != nil || ok {
		return coords, ok, err
	}
	if strings.TrimSpace(fallback) == "" || fallback == address {
		return sportshall.Coordinates{}, false, nil
	}
	return n.search(ctx, n.query(fallback, area))
}

func (n *Nominatim) query(address, area string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{address, area, n.country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) search(ctx context.Context, q string) (sportshall.Coordinates, bool, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("geocode %q: %w", q, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return sportshall.Coordinates{}, false, fmt.Errorf("geocode %q returned %d", q, resp.StatusCode)
	}

	var results []searchResult
	if err := sonic.Unmarshal(body, &results); err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return sportshall.Coordinates{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return sportshall.Coordinates{}, false, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}
	return sportshall.Coordinates{Latitude: lat, Longitude: lon}, true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
