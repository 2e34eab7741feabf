package lzvcup

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/resilience"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL   = "https://www.lzvcup.be"
	defaultUserAgent = "lzvcup-scraper/1.0"
	defaultTimeout   = 20 * time.Second
	maxRedirects     = 5
	maxBodyBytes     = 6 << 20
)

var errLZVTransient = crerr.New("lzvcup transient failure")

type ClientConfig struct {
	// HTTPClient is shared by every caller, including the history workers.
	HTTPClient     *fasthttp.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	Retry          resilience.RetryPolicy
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client fetches pages of the league site and parses them. It is safe for
// concurrent use.
type Client struct {
	httpClient *fasthttp.Client
	parser     Parser
	userAgent  string
	retry      resilience.RetryPolicy
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                defaultUserAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		parser:     Parser{BaseURL: baseURL},
		userAgent:  userAgent,
		retry:      cfg.Retry,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:     logger,
	}
}

// ResolveURL turns a site-relative path into an absolute URL.
func (c *Client) ResolveURL(href string) string {
	return c.parser.ResolveURL(href)
}

// fetchDocument loads and parses one page. Any failure to obtain a 2xx
// response is reported as usecase.ErrPageUnavailable.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document
	err := c.breaker.Do(func() error {
		return resilience.Retry(ctx, c.retry, isTransient, func(attempt int) error {
			var err error
			doc, err = c.executeRequest(ctx, pageURL)
			if err != nil && isTransient(err) {
				c.logger.DebugContext(ctx, "lzvcup request attempt failed", "url", pageURL, "attempt", attempt+1, "error", err)
			}
			return err
		})
	}, isTransient)
	if err == nil {
		return doc, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "lzvcup circuit breaker rejected request", "url", pageURL, "state", c.breaker.State())
	} else {
		c.logger.WarnContext(ctx, "lzvcup request failed", "url", pageURL, "error", err)
	}
	return nil, fmt.Errorf("%w: %w", usecase.ErrPageUnavailable, err)
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(pageURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if err := c.httpClient.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, crerr.Wrapf(errLZVTransient, "GET %s: %v", pageURL, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
	case isRetryableStatus(status):
		return nil, crerr.Wrapf(errLZVTransient, "GET %s: status=%d body=%s", pageURL, status, abbreviateBody(resp.Body()))
	default:
		return nil, fmt.Errorf("GET %s: status=%d", pageURL, status)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", pageURL, err)
	}
	return doc, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errLZVTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	body := strings.Join(strings.Fields(string(raw)), " ")
	if len(body) <= 240 {
		return body
	}
	return body[:240] + "..."
}
