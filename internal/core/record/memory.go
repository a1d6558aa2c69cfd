package record

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]RunRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]RunRecord{}, now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, r *RunRecord) error {
	if err := prepare(r, m.now()); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.RunID]; ok {
		return duplicate(r.RunID)
	}
	m.records[r.RunID] = *r
	return nil
}

func (m *MemoryStore) Get(_ context.Context, runID string) (*RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[runID]
	if !ok {
		return nil, notFound(runID)
	}
	return &r, nil
}

func (m *MemoryStore) Latest(_ context.Context, limit int) ([]RunRecord, error) {
	all := m.sorted()
	if limit < len(all) {
		all = all[:max(limit, 0)]
	}
	return all, nil
}

func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	all := m.sorted()
	stats := Stats{TotalRecords: int64(len(all))}
	if len(all) > 0 {
		latest, oldest := all[0].Summary(), all[len(all)-1].Summary()
		stats.LatestRun, stats.OldestRun = &latest, &oldest
	}
	return stats, nil
}

// sorted returns all records newest first.
func (m *MemoryStore) sorted() []RunRecord {
	m.mu.RLock()
	out := make([]RunRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].RunID < out[j].RunID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
