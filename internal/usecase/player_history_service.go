package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultHistoryWorkers = 10

// PlayerHistoryResult is the combined outcome of a history fetch. Rows are
// in completion order, not submission order.
type PlayerHistoryResult struct {
	TaskCount    int                      `json:"task_count"`
	WorkerCount  int                      `json:"worker_count"`
	SuccessCount int                      `json:"success_count"`
	FailedCount  int                      `json:"failed_count"`
	DurationMs   int64                    `json:"duration_ms"`
	Rows         []player.HistoricalEntry `json:"-"`
	Failures     []PlayerFailure          `json:"failures"`
}

type PlayerFailure struct {
	Player  player.Ref `json:"player"`
	Message string     `json:"message"`
	Err     error      `json:"-"`
}

type PlayerHistoryService struct {
	source  PlayerHistorySource
	workers int
	logger  *logging.Logger
}

func NewPlayerHistoryService(source PlayerHistorySource, workers int, logger *logging.Logger) *PlayerHistoryService {
	if workers <= 0 {
		workers = DefaultHistoryWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PlayerHistoryService{source: source, workers: workers, logger: logger}
}

type historyOutcome struct {
	ref  player.Ref
	rows []player.HistoricalEntry
	err  error
}

// Fetch loads the history of every ref on a bounded worker pool. A failing
// or panicking task is reported in Failures and does not stop the others.
func (s *PlayerHistoryService) Fetch(ctx context.Context, refs []player.Ref) (PlayerHistoryResult, error) {
	ctx, span := startSpan(ctx, "usecase.PlayerHistoryService.Fetch", attribute.Int("players", len(refs)))
	defer span.End()

	result := PlayerHistoryResult{
		TaskCount:   len(refs),
		WorkerCount: min(s.workers, max(len(refs), 1)),
	}
	if len(refs) == 0 {
		return result, nil
	}

	start := time.Now()
	outcomes := make(chan historyOutcome, len(refs))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(result.WorkerCount)
	if err != nil {
		return PlayerHistoryResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, ref := range refs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			outcome := s.fetchOne(ctx, ref)
			if outcome.err != nil {
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			outcomes <- outcome
		}); err != nil {
			workers.Done()
			return PlayerHistoryResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			result.Failures = append(result.Failures, PlayerFailure{
				Player:  outcome.ref,
				Message: outcome.err.Error(),
				Err:     outcome.err,
			})
			continue
		}
		result.Rows = append(result.Rows, outcome.rows...)
	}

	sort.SliceStable(result.Failures, func(i, j int) bool {
		if result.Failures[i].Player.URL != result.Failures[j].Player.URL {
			return result.Failures[i].Player.URL < result.Failures[j].Player.URL
		}
		return result.Failures[i].Player.Name < result.Failures[j].Player.Name
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	span.SetAttributes(
		attribute.Int("workers", result.WorkerCount),
		attribute.Int("failed", result.FailedCount),
	)
	s.logger.InfoContext(ctx, "player history fetched",
		"players", result.TaskCount,
		"workers", result.WorkerCount,
		"rows", len(result.Rows),
		"failed", result.FailedCount,
		"duration_ms", result.DurationMs,
	)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (s *PlayerHistoryService) fetchOne(ctx context.Context, ref player.Ref) historyOutcome {
	outcome := historyOutcome{ref: ref}
	if err := ctx.Err(); err != nil {
		outcome.err = err
		return outcome
	}

	var catcher panics.Catcher
	catcher.Try(func() {
		outcome.rows, outcome.err = s.source.PlayerHistory(ctx, ref)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		outcome.rows = nil
		outcome.err = fmt.Errorf("player history panicked: %w", recovered.AsError())
	}
	if outcome.err != nil {
		s.logger.WarnContext(ctx, "player history failed", "player", ref.Name, "url", ref.URL, "error", outcome.err)
		return outcome
	}

	for i := range outcome.rows {
		outcome.rows[i].Name = ref.Name
		outcome.rows[i].URL = ref.URL
	}
	return outcome
}
