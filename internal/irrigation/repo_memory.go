package irrigation

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Insert(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *MemoryRepo) ListByUsername(ctx context.Context, username string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, limit)
	// Newest first.
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Username != username {
			continue
		}
		out = append(out, r.records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
