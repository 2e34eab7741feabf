package lzvcup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/resilience"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

const areaFixture = `
<button class="btn btn-link btn-block text-left collapsed">Leuven</button>
<div class="card-body row"><a class="btn btn-outline-primary" href="/competition/1">1e klasse</a></div>`

func testClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: resilience.RetryPolicy{
			MaxRetries:  2,
			BaseBackoff: time.Millisecond,
			MaxBackoff:  5 * time.Millisecond,
		},
	})
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(areaFixture))
	}))
	defer srv.Close()

	cards, err := testClient(srv.URL).RegionCards(context.Background(), "/results/5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Region != "Leuven" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
	if cards[0].Competitions[0].URL != srv.URL+"/competition/1" {
		t.Fatalf("expected competition url on test server, got=%s", cards[0].Competitions[0].URL)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got=%d", got)
	}
}

func TestClient_NotFoundIsPageUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TeamPage(context.Background(), srv.URL+"/team/404")
	if !errors.Is(err, usecase.ErrPageUnavailable) {
		t.Fatalf("expected page unavailable, got=%v", err)
	}
	if !usecase.IsAbsence(err) {
		t.Fatalf("expected absence, got=%v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected no retry for 404, got=%d requests", got)
	}
}

func TestClient_ExhaustedRetriesIsPageUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PlayerHistory(context.Background(), player.Ref{Name: "Jan", URL: srv.URL + "/player/1"})
	if !errors.Is(err, usecase.ErrPageUnavailable) {
		t.Fatalf("expected page unavailable, got=%v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got=%d", got)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(areaFixture))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).RegionCards(ctx, srv.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got=%v", err)
	}
}
