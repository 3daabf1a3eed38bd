package repository

import (
	"context"
	"sync"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// memoryHistoryRepo keeps history in process memory. The mutex serializes
// same-user appends so concurrent analyses cannot lose updates.
type memoryHistoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]model.HistoryEntry
}

func NewMemoryHistoryRepo() HistoryRepo {
	return &memoryHistoryRepo{
		entries: make(map[string][]model.HistoryEntry),
	}
}

func (r *memoryHistoryRepo) AppendEntry(ctx context.Context, userID string, report *model.AnalysisReport) (*model.HistoryEntry, error) {
	entry := newEntry(userID, report)

	r.mu.Lock()
	r.entries[userID] = append(r.entries[userID], *entry)
	r.mu.Unlock()

	return entry, nil
}

func (r *memoryHistoryRepo) GetRecent(ctx context.Context, userID string, n int) ([]model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[userID]
	if n > 0 && len(stored) > n {
		stored = stored[len(stored)-n:]
	}

	out := make([]model.HistoryEntry, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *memoryHistoryRepo) Count(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[userID]), nil
}
