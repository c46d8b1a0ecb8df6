package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Memory keeps records in a map. Contents are lost on exit.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	opts    options
}

func NewMemory(opts ...Option) *Memory {
	return &Memory{
		records: make(map[string]Record),
		opts:    newOptions(opts),
	}
}

func (m *Memory) Save(_ context.Context, rec Record) (Record, error) {
	if err := validate(rec); err != nil {
		return Record{}, err
	}
	rec.Template.Components = document.CloneAll(rec.Template.Components)

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.timestamp()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if prev, ok := m.records[rec.ID]; ok {
		rec.CreatedAt = prev.CreatedAt
	}
	m.records[rec.ID] = rec
	return clone(rec), nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return clone(rec), nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, clone(rec))
	}
	m.mu.RUnlock()

	slices.SortFunc(out, newestFirst)
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) Close() error { return nil }

func clone(rec Record) Record {
	rec.Template.Components = document.CloneAll(rec.Template.Components)
	return rec
}

func newestFirst(a, b Record) int {
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
