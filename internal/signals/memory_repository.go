package signals

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests and local runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	signals map[string]SegmentSignal
}

// NewMemoryRepository creates an empty in-memory signal repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{signals: make(map[string]SegmentSignal)}
}

func memKey(from, to, cabin string) string { return from + "-" + to + ":" + cabin }

func (r *MemoryRepository) Get(_ context.Context, from, to, cabin string) (SegmentSignal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sig, ok := r.signals[memKey(from, to, cabin)]
	if !ok {
		return SegmentSignal{}, ErrNotFound
	}
	return sig, nil
}

func (r *MemoryRepository) Put(_ context.Context, cabin string, sig SegmentSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.signals[memKey(sig.From, sig.To, cabin)] = sig
	return nil
}

func (r *MemoryRepository) Prune(_ context.Context, olderThanDays int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	removed := 0
	for key, sig := range r.signals {
		if sig.CheckedAt.Before(cutoff) {
			delete(r.signals, key)
			removed++
		}
	}
	return removed, nil
}

// Ensure MemoryRepository implements Repository interface.
var _ Repository = (*MemoryRepository)(nil)
