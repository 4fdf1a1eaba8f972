// Package coupontest provides an in-memory coupon.Repository for tests.
package coupontest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

// ErrDuplicateCode mimics the unique-index failure Postgres reports.
var ErrDuplicateCode = errors.New(`pq: duplicate key value violates unique constraint "coupons_coupon_code_key"`)

type Memory struct {
	mu      sync.Mutex
	coupons map[string]model.Coupon
}

func NewMemory() *Memory {
	return &Memory{coupons: map[string]model.Coupon{}}
}

func (m *Memory) Create(_ context.Context, c *model.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.coupons {
		if other.CouponCode == c.CouponCode {
			return ErrDuplicateCode
		}
	}
	m.coupons[c.ID] = *c
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, c *model.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.coupons {
		if id != c.ID && other.CouponCode == c.CouponCode {
			return ErrDuplicateCode
		}
	}
	if _, ok := m.coupons[c.ID]; ok {
		m.coupons[c.ID] = *c
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.coupons[id]
	delete(m.coupons, id)
	return ok, nil
}
