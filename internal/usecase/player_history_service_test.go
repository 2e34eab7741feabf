package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	usecasemock "github.com/riskibarqy/lzvcup-scraper/internal/mocks/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type historyFunc func(ctx context.Context, ref player.Ref) ([]player.HistoricalEntry, error)

func (f historyFunc) PlayerHistory(ctx context.Context, ref player.Ref) ([]player.HistoricalEntry, error) {
	return f(ctx, ref)
}

func makeRefs(n int) []player.Ref {
	refs := make([]player.Ref, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, player.Ref{
			Name: fmt.Sprintf("Player %02d", i),
			URL:  fmt.Sprintf("https://www.lzvcup.be/player/%d", i),
		})
	}
	return refs
}

func twoSeasons(_ context.Context, ref player.Ref) ([]player.HistoricalEntry, error) {
	return []player.HistoricalEntry{
		{Team: "Team " + ref.URL[len(ref.URL)-1:], Seizoen: "2022-2023", Reeks: "1e klasse", Stand: "3", Wedstrijden: 18, Goals: 4},
		{Team: "Team " + ref.URL[len(ref.URL)-1:], Seizoen: "2023-2024", Reeks: "1e klasse", Stand: "1", Wedstrijden: 20, Goals: 9},
	}, nil
}

func TestPlayerHistoryService_PoolSizeDoesNotChangeRows(t *testing.T) {
	t.Parallel()

	refs := makeRefs(25)
	single, err := NewPlayerHistoryService(historyFunc(twoSeasons), 1, nil).Fetch(context.Background(), refs)
	require.NoError(t, err)
	pooled, err := NewPlayerHistoryService(historyFunc(twoSeasons), 10, nil).Fetch(context.Background(), refs)
	require.NoError(t, err)

	assert.Equal(t, 1, single.WorkerCount)
	assert.Equal(t, 10, pooled.WorkerCount)
	assert.Len(t, single.Rows, 50)
	assert.ElementsMatch(t, single.Rows, pooled.Rows)
	assert.Equal(t, 25, pooled.SuccessCount)
	assert.Zero(t, pooled.FailedCount)

	for _, row := range pooled.Rows {
		if !strings.HasPrefix(row.URL, "https://www.lzvcup.be/player/") || row.Name == "" {
			t.Fatalf("row not labelled with its player: %+v", row)
		}
	}
}

func TestPlayerHistoryService_WorkerCountCappedByTasks(t *testing.T) {
	t.Parallel()

	result, err := NewPlayerHistoryService(historyFunc(twoSeasons), 10, nil).Fetch(context.Background(), makeRefs(3))
	require.NoError(t, err)
	assert.Equal(t, 3, result.WorkerCount)
}

func TestPlayerHistoryService_PanicAndErrorAreIsolated(t *testing.T) {
	t.Parallel()

	refs := makeRefs(4)
	source := historyFunc(func(ctx context.Context, ref player.Ref) ([]player.HistoricalEntry, error) {
		switch ref.URL {
		case refs[1].URL:
			return nil, fmt.Errorf("fetch player page: %w", ErrPageUnavailable)
		case refs[2].URL:
			panic("unexpected markup")
		}
		return twoSeasons(ctx, ref)
	})

	result, err := NewPlayerHistoryService(source, 2, nil).Fetch(context.Background(), refs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Len(t, result.Rows, 4)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, refs[1], result.Failures[0].Player)
	assert.True(t, errors.Is(result.Failures[0].Err, ErrPageUnavailable))
	assert.Equal(t, refs[2], result.Failures[1].Player)
	assert.Contains(t, result.Failures[1].Message, "panicked")
}

func TestPlayerHistoryService_UsingMockery(t *testing.T) {
	t.Parallel()

	ref := player.Ref{Name: "Jan Peeters", URL: "https://www.lzvcup.be/player/77"}
	source := usecasemock.NewPlayerHistorySource(t)
	source.
		On("PlayerHistory", mock.Anything, ref).
		Return([]player.HistoricalEntry{{Team: "FC Kessel-Lo", Seizoen: "2023-2024", Goals: 12}}, nil).
		Once()

	result, err := NewPlayerHistoryService(source, 4, nil).Fetch(context.Background(), []player.Ref{ref})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Jan Peeters", result.Rows[0].Name)
	assert.Equal(t, ref.URL, result.Rows[0].URL)
	assert.Equal(t, 12, result.Rows[0].Goals)
}

func TestPlayerHistoryService_NoRefs(t *testing.T) {
	t.Parallel()

	result, err := NewPlayerHistoryService(historyFunc(twoSeasons), 10, nil).Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.TaskCount)
	assert.Empty(t, result.Rows)
}

func TestPlayerHistoryService_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewPlayerHistoryService(historyFunc(twoSeasons), 3, nil).Fetch(ctx, makeRefs(5))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, result.FailedCount)
	assert.Empty(t, result.Rows)
}
