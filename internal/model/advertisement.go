package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type AdCategory string

const (
	AdHero   AdCategory = "hero"
	AdStrap  AdCategory = "strap"
	AdCoupon AdCategory = "coupon"
	AdSlider AdCategory = "slider"
	AdLogo   AdCategory = "logo"
)

func ParseAdCategory(raw string) (AdCategory, error) {
	c := AdCategory(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case AdHero, AdStrap, AdCoupon, AdSlider, AdLogo:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q: must be one of hero, strap, coupon, slider, logo", raw)
}

type HeroAd struct {
	Image              string `json:"image"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	ButtonName         string `json:"buttonName"`
	ButtonURL          string `json:"buttonUrl"`
	BtnBackgroundColor string `json:"btnBackgroundColor"`
}

// ImageAd is the shape shared by strap, coupon and logo ads.
type ImageAd struct {
	Image string `json:"image"`
}

type SliderAd struct {
	Title                 string `json:"title"`
	LogoImage             string `json:"logoImage"`
	Content               string `json:"content"`
	ButtonName            string `json:"buttonName"`
	ButtonColor           string `json:"buttonColor"`
	ButtonURL             string `json:"buttonUrl"`
	ButtonBackgroundColor string `json:"buttonBackgroundColor"`
}

func (h *HeroAd) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return valueJSON(h)
}
func (h *HeroAd) Scan(src any) error { return scanJSON(src, h) }

func (i *ImageAd) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return valueJSON(i)
}
func (i *ImageAd) Scan(src any) error { return scanJSON(src, i) }

func (s *SliderAd) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return valueJSON(s)
}
func (s *SliderAd) Scan(src any) error { return scanJSON(src, s) }

type Advertisement struct {
	BaseModel
	Category AdCategory `db:"category" json:"category"`
	Hero     *HeroAd    `db:"hero" json:"hero,omitempty"`
	Strap    *ImageAd   `db:"strap" json:"strap,omitempty"`
	Coupon   *ImageAd   `db:"coupon" json:"coupon,omitempty"`
	Slider   *SliderAd  `db:"slider" json:"slider,omitempty"`
	Logo     *ImageAd   `db:"logo" json:"logo,omitempty"`
}

// Normalize keeps only the sub-object of the active category, allocating it
// if missing, and clears every other one.
func (a *Advertisement) Normalize() {
	hero, strap, coupon, slider, logo := a.Hero, a.Strap, a.Coupon, a.Slider, a.Logo
	a.Hero, a.Strap, a.Coupon, a.Slider, a.Logo = nil, nil, nil, nil, nil
	switch a.Category {
	case AdHero:
		a.Hero = orNew(hero)
	case AdStrap:
		a.Strap = orNew(strap)
	case AdCoupon:
		a.Coupon = orNew(coupon)
	case AdSlider:
		a.Slider = orNew(slider)
	case AdLogo:
		a.Logo = orNew(logo)
	}
}

func orNew[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}

// ImageSlot points at the image of the active sub-object, or is nil before
// Normalize has run for the category.
func (a *Advertisement) ImageSlot() *string {
	switch {
	case a.Category == AdHero && a.Hero != nil:
		return &a.Hero.Image
	case a.Category == AdStrap && a.Strap != nil:
		return &a.Strap.Image
	case a.Category == AdCoupon && a.Coupon != nil:
		return &a.Coupon.Image
	case a.Category == AdSlider && a.Slider != nil:
		return &a.Slider.LogoImage
	case a.Category == AdLogo && a.Logo != nil:
		return &a.Logo.Image
	}
	return nil
}
