package journal

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps entries in memory. It is used when no Redis address is
// configured, so entries only live as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	runs    []Run
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry)}
}

// Append adds an entry to the end of its run
func (m *MemoryStore) Append(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.RunID]; !ok {
		m.runs = append(m.runs, Run{ID: entry.RunID, Started: entry.Time})
	}
	m.entries[entry.RunID] = append(m.entries[entry.RunID], entry)
	return nil
}

// Entries returns the entries of a run
func (m *MemoryStore) Entries(_ context.Context, runID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries, ok := m.entries[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Runs returns up to limit runs, most recent first
func (m *MemoryStore) Runs(_ context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, len(m.runs))
	copy(runs, m.runs)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Started.After(runs[j].Started)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close does nothing
func (m *MemoryStore) Close() error {
	return nil
}
