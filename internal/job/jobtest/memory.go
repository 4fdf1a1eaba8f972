// Package jobtest provides an in-memory job.Repository for tests.
package jobtest

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Memory struct {
	mu   sync.Mutex
	jobs map[string]model.Job
}

func NewMemory(jobs ...*model.Job) *Memory {
	m := &Memory{jobs: map[string]model.Job{}}
	for _, j := range jobs {
		m.jobs[j.ID] = *j
	}
	return m
}

func (m *Memory) Create(_ context.Context, j *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, j *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.ID]; ok {
		m.jobs[j.ID] = *j
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[id]
	delete(m.jobs, id)
	return ok, nil
}
