// Package enquirytest provides an in-memory enquiry.Repository for tests.
package enquirytest

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Memory struct {
	mu        sync.Mutex
	enquiries map[string]model.Enquiry
}

func NewMemory() *Memory {
	return &Memory{enquiries: map[string]model.Enquiry{}}
}

func (m *Memory) Create(_ context.Context, e *model.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enquiries[e.ID] = *e
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.enquiries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Enquiry, 0, len(m.enquiries))
	for _, e := range m.enquiries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, e *model.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enquiries[e.ID]; ok {
		m.enquiries[e.ID] = *e
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.enquiries[id]
	delete(m.enquiries, id)
	return ok, nil
}
