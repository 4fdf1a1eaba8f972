package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/advertisement/adtest"
	"github.com/fekuna/omnipos-directory-service/internal/advertisement/dto"
	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
)

func newUseCase() *adUseCase {
	log := logger.NewNop()
	return NewAdUseCase(adtest.NewMemory(), event.NewEmitter(event.Noop{}, log), log).(*adUseCase)
}

func TestImageField(t *testing.T) {
	cases := map[model.AdCategory]string{
		model.AdHero:   "hero[image]",
		model.AdStrap:  "strap[image]",
		model.AdCoupon: "coupon[image]",
		model.AdSlider: "slider[logoImage]",
		model.AdLogo:   "logo[image]",
	}
	for c, want := range cases {
		if got := dto.ImageField(c); got != want {
			t.Fatalf("ImageField(%s) = %q, want %q", c, got, want)
		}
	}
}

func TestCreateAdvertisementKeepsOnlyActiveCategory(t *testing.T) {
	uc := newUseCase()

	ad, err := uc.CreateAdvertisement(context.Background(), &dto.AdInput{
		Category: "Hero",
		Hero:     &model.HeroAd{Title: "Summer sale", ButtonURL: "https://example.com"},
		Slider:   &model.SliderAd{Title: "ignored"},
		Files:    attachment.Files{"hero[image]": {"/uploads/ads/hero.png"}, "slider[logoImage]": {"/uploads/ads/x.png"}},
	})
	if err != nil {
		t.Fatalf("CreateAdvertisement error: %v", err)
	}
	if ad.Category != model.AdHero || ad.Slider != nil {
		t.Fatalf("ad = %+v", ad)
	}
	if ad.Hero.Image != "/uploads/ads/hero.png" || ad.Hero.Title != "Summer sale" {
		t.Fatalf("hero = %+v", ad.Hero)
	}
}

func TestCreateAdvertisementWithoutSubObject(t *testing.T) {
	uc := newUseCase()

	ad, err := uc.CreateAdvertisement(context.Background(), &dto.AdInput{
		Category: "logo",
		Files:    attachment.Files{"logo[image]": {"/uploads/ads/logo.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ad.Logo == nil || ad.Logo.Image != "/uploads/ads/logo.png" {
		t.Fatalf("logo = %+v", ad.Logo)
	}
}

func TestCreateAdvertisementRejectsUnknownCategory(t *testing.T) {
	uc := newUseCase()
	for _, c := range []string{"", "banner"} {
		if _, err := uc.CreateAdvertisement(context.Background(), &dto.AdInput{Category: c}); !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("category %q: err = %v, want validation", c, err)
		}
	}
}

func TestUpdateAdvertisementKeepsImageWithoutUpload(t *testing.T) {
	uc := newUseCase()
	ad, err := uc.CreateAdvertisement(context.Background(), &dto.AdInput{
		Category: "slider",
		Slider:   &model.SliderAd{Title: "Old", Content: "c"},
		Files:    attachment.Files{"slider[logoImage]": {"/uploads/ads/s1.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := uc.UpdateAdvertisement(context.Background(), ad.ID, &dto.AdInput{
		Slider: &model.SliderAd{Title: "New"},
	})
	if err != nil {
		t.Fatalf("UpdateAdvertisement error: %v", err)
	}
	if updated.Slider.Title != "New" || updated.Slider.LogoImage != "/uploads/ads/s1.png" {
		t.Fatalf("slider = %+v", updated.Slider)
	}

	updated, err = uc.UpdateAdvertisement(context.Background(), ad.ID, &dto.AdInput{
		Files: attachment.Files{"slider[logoImage]": {"/uploads/ads/s2.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Slider.Title != "New" || updated.Slider.LogoImage != "/uploads/ads/s2.png" {
		t.Fatalf("slider = %+v", updated.Slider)
	}
}

func TestUpdateAdvertisementSwitchesCategory(t *testing.T) {
	uc := newUseCase()
	ad, err := uc.CreateAdvertisement(context.Background(), &dto.AdInput{
		Category: "strap",
		Files:    attachment.Files{"strap[image]": {"/uploads/ads/strap.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := uc.UpdateAdvertisement(context.Background(), ad.ID, &dto.AdInput{
		Category: "coupon",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Strap != nil || updated.Coupon == nil || updated.Coupon.Image != "" {
		t.Fatalf("ad = %+v, want empty coupon sub-object only", updated)
	}
	got, err := uc.GetAdvertisement(context.Background(), ad.ID)
	if err != nil || got.Category != model.AdCoupon {
		t.Fatalf("stored = %+v, %v", got, err)
	}
}

func TestAdvertisementNotFound(t *testing.T) {
	uc := newUseCase()
	const missing = "64b7f0c2a1b2c3d4e5f60718"
	if _, err := uc.GetAdvertisement(context.Background(), "x"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("get: err = %v", err)
	}
	if _, err := uc.UpdateAdvertisement(context.Background(), missing, &dto.AdInput{}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("update: err = %v", err)
	}
	if err := uc.DeleteAdvertisement(context.Background(), missing); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("delete: err = %v", err)
	}
}
