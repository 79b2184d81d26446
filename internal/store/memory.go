package store

import (
	"context"
	"sort"
	"sync"

	"VyaparDash/internal/model"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests. It mirrors the Postgres
// ordering guarantees (transactions newest first, summaries newest period
// first).
type Memory struct {
	mu         sync.RWMutex
	txns       []model.Transaction
	summaries  map[string]map[string]model.GSTSummary // owner -> period -> summary
	categories []model.Category
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{summaries: make(map[string]map[string]model.GSTSummary)}
}

func (m *Memory) ListTransactions(_ context.Context, ownerID string) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Transaction, 0)
	for _, t := range m.txns {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *Memory) InsertTransactions(_ context.Context, txns []model.Transaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txns {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		m.txns = append(m.txns, t)
	}
	return len(txns), nil
}

func (m *Memory) DeleteTransaction(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.txns {
		if t.OwnerID == ownerID && t.ID == id {
			m.txns = append(m.txns[:i], m.txns[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteAllTransactions(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.txns[:0]
	for _, t := range m.txns {
		if t.OwnerID != ownerID {
			kept = append(kept, t)
		}
	}
	m.txns = kept
	return nil
}

func (m *Memory) ReplaceGSTSummaries(_ context.Context, ownerID string, summaries []model.GSTSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byPeriod := make(map[string]model.GSTSummary, len(summaries))
	for _, s := range summaries {
		byPeriod[s.Period] = s
	}
	m.summaries[ownerID] = byPeriod
	return nil
}

func (m *Memory) ListGSTSummaries(_ context.Context, ownerID string) ([]model.GSTSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.GSTSummary, 0, len(m.summaries[ownerID]))
	for _, s := range m.summaries[ownerID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}

func (m *Memory) GetGSTSummary(_ context.Context, ownerID, period string) (model.GSTSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.summaries[ownerID][period]; ok {
		return s, nil
	}
	return model.GSTSummary{}, ErrNotFound
}

func (m *Memory) ListCategories(_ context.Context) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Category(nil), m.categories...), nil
}

// SetCategories replaces the category list (test setup helper).
func (m *Memory) SetCategories(cats []model.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = cats
}
