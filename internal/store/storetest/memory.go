// Package storetest provides an in-memory store.Repository for tests of
// packages that resolve stores.
package storetest

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Memory struct {
	mu     sync.Mutex
	stores map[string]model.Store

	// Err, when set, is returned by every call.
	Err error
}

func NewMemory(stores ...*model.Store) *Memory {
	m := &Memory{stores: map[string]model.Store{}}
	for _, s := range stores {
		m.stores[s.ID] = *s
	}
	return m
}

func (m *Memory) Create(_ context.Context, s *model.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.stores[s.ID] = *s
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, s *model.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.stores[s.ID]; ok {
		m.stores[s.ID] = *s
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.stores[id]
	delete(m.stores, id)
	return ok, nil
}

func (m *Memory) FindSummaries(_ context.Context, ids []string) (map[string]*model.StoreSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := map[string]*model.StoreSummary{}
	for _, id := range ids {
		if s, ok := m.stores[id]; ok {
			out[id] = s.Summary()
		}
	}
	return out, nil
}

// Len reports how many stores are held.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
