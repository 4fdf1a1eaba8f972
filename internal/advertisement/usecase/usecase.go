package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/advertisement"
	"github.com/fekuna/omnipos-directory-service/internal/advertisement/dto"
	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
)

const entity = "advertisement"

type adUseCase struct {
	repo   advertisement.Repository
	events *event.Emitter
	logger logger.ZapLogger
	now    func() time.Time
}

func NewAdUseCase(repo advertisement.Repository, events *event.Emitter, log logger.ZapLogger) advertisement.UseCase {
	return &adUseCase{
		repo:   repo,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

func (uc *adUseCase) CreateAdvertisement(ctx context.Context, input *dto.AdInput) (*model.Advertisement, error) {
	category, err := model.ParseAdCategory(input.Category)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	ad := fromInput(category, input)
	ad.Normalize()
	slot := ad.ImageSlot()
	*slot = attachment.MergeSingle(*slot, input.Files, dto.ImageField(category))

	ad.Touch(uc.now())
	if err := uc.repo.Create(ctx, ad); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Created, ad.ID, ad)
	return ad, nil
}

func (uc *adUseCase) GetAdvertisement(ctx context.Context, id string) (*model.Advertisement, error) {
	return uc.find(ctx, id)
}

func (uc *adUseCase) ListAdvertisements(ctx context.Context) ([]model.Advertisement, error) {
	ads, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ads, nil
}

// UpdateAdvertisement replaces the active sub-object with the submitted one.
// When the category is unchanged, an unsent sub-object and an unsent image
// both fall back to what is stored.
func (uc *adUseCase) UpdateAdvertisement(ctx context.Context, id string, input *dto.AdInput) (*model.Advertisement, error) {
	existing, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	category := existing.Category
	if input.Category != "" {
		if category, err = model.ParseAdCategory(input.Category); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	sameCategory := category == existing.Category

	ad := fromInput(category, input)
	ad.BaseModel = existing.BaseModel
	if sameCategory && !hasActive(ad) {
		ad = existing
	}
	ad.Normalize()

	slot := ad.ImageSlot()
	if *slot == "" && sameCategory {
		if old := existing.ImageSlot(); old != nil {
			*slot = *old
		}
	}
	*slot = attachment.MergeSingle(*slot, input.Files, dto.ImageField(category))

	ad.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, ad); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Updated, ad.ID, ad)
	return ad, nil
}

func (uc *adUseCase) DeleteAdvertisement(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("Advertisement not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Advertisement not found")
	}
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *adUseCase) find(ctx context.Context, id string) (*model.Advertisement, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("Advertisement not found")
	}
	ad, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if ad == nil {
		return nil, apperror.NotFound("Advertisement not found")
	}
	return ad, nil
}

func fromInput(category model.AdCategory, input *dto.AdInput) *model.Advertisement {
	return &model.Advertisement{
		Category: category,
		Hero:     input.Hero,
		Strap:    input.Strap,
		Coupon:   input.Coupon,
		Slider:   input.Slider,
		Logo:     input.Logo,
	}
}

// hasActive reports whether the sub-object of ad's category was submitted.
func hasActive(ad *model.Advertisement) bool {
	switch ad.Category {
	case model.AdHero:
		return ad.Hero != nil
	case model.AdStrap:
		return ad.Strap != nil
	case model.AdCoupon:
		return ad.Coupon != nil
	case model.AdSlider:
		return ad.Slider != nil
	case model.AdLogo:
		return ad.Logo != nil
	}
	return false
}
