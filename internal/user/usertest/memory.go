// Package usertest provides an in-memory user.Repository for tests.
package usertest

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/user"
)

type Memory struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemory(users ...*model.User) *Memory {
	m := &Memory{users: map[string]model.User{}}
	for _, u := range users {
		m.users[u.ID] = *u
	}
	return m
}

func (m *Memory) conflict(u *model.User) error {
	for id, other := range m.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return user.ErrEmailExists
		}
		if other.PhoneNumber == u.PhoneNumber {
			return user.ErrPhoneExists
		}
	}
	return nil
}

func (m *Memory) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflict(u); err != nil {
		return err
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) find(match func(model.User) bool) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.Email == email }), nil
}

func (m *Memory) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.PhoneNumber == phone }), nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflict(u); err != nil {
		return err
	}
	if _, ok := m.users[u.ID]; ok {
		m.users[u.ID] = *u
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	delete(m.users, id)
	return ok, nil
}
