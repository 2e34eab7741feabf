package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
)

// DatasetRepository keeps the last stored dataset in memory.
type DatasetRepository struct {
	mu      sync.RWMutex
	current dataset.Dataset
	stored  bool
	writes  int
}

var _ dataset.Repository = (*DatasetRepository)(nil)

func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

func (r *DatasetRepository) Replace(ctx context.Context, data dataset.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = data
	r.stored = true
	r.writes++
	return nil
}

// Last returns the most recently stored dataset.
func (r *DatasetRepository) Last(_ context.Context) (dataset.Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.stored
}

func (r *DatasetRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
