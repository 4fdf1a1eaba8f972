// Package adtest provides an in-memory advertisement.Repository for tests.
package adtest

import (
	"context"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Memory struct {
	mu  sync.Mutex
	ads map[string]model.Advertisement
}

func NewMemory() *Memory {
	return &Memory{ads: map[string]model.Advertisement{}}
}

// clone copies the sub-objects so callers cannot alias stored state.
func clone(ad model.Advertisement) model.Advertisement {
	if ad.Hero != nil {
		h := *ad.Hero
		ad.Hero = &h
	}
	if ad.Strap != nil {
		s := *ad.Strap
		ad.Strap = &s
	}
	if ad.Coupon != nil {
		c := *ad.Coupon
		ad.Coupon = &c
	}
	if ad.Slider != nil {
		s := *ad.Slider
		ad.Slider = &s
	}
	if ad.Logo != nil {
		l := *ad.Logo
		ad.Logo = &l
	}
	return ad
}

func (m *Memory) Create(_ context.Context, ad *model.Advertisement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ads[ad.ID] = clone(*ad)
	return nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*model.Advertisement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ad, ok := m.ads[id]
	if !ok {
		return nil, nil
	}
	ad = clone(ad)
	return &ad, nil
}

func (m *Memory) FindAll(_ context.Context) ([]model.Advertisement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Advertisement, 0, len(m.ads))
	for _, ad := range m.ads {
		out = append(out, clone(ad))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, ad *model.Advertisement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ads[ad.ID]; ok {
		m.ads[ad.ID] = clone(*ad)
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ads[id]
	delete(m.ads, id)
	return ok, nil
}
