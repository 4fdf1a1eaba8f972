package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/coupon"
	"github.com/fekuna/omnipos-directory-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"go.uber.org/zap"
)

const entity = "coupon"

type couponUseCase struct {
	repo      coupon.Repository
	resolver  *storeref.Resolver
	summaries storeref.Summaries
	events    *event.Emitter
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewCouponUseCase(repo coupon.Repository, resolver *storeref.Resolver, summaries storeref.Summaries, events *event.Emitter, log logger.ZapLogger) coupon.UseCase {
	return &couponUseCase{
		repo:      repo,
		resolver:  resolver,
		summaries: summaries,
		events:    events,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *couponUseCase) CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error) {
	if strings.TrimSpace(input.CouponCode) == "" {
		return nil, apperror.Validation("Coupon code is required")
	}
	if strings.TrimSpace(input.OfferTitle.Highlight) == "" {
		return nil, apperror.Validation("offerTitle.highlight is required")
	}
	expiry, err := parseExpiry(input.ExpiredDate)
	if err != nil {
		return nil, err
	}

	binding, err := uc.resolver.BindCoupon(ctx, input.StoreName, input.Category, input.Location, input.Plan)
	if err != nil {
		return nil, bindingError(err)
	}

	c := &model.Coupon{
		Binding:           binding,
		CouponCode:        strings.TrimSpace(input.CouponCode),
		OfferTitle:        input.OfferTitle,
		Description:       input.Description,
		TermsAndCondition: input.TermsAndCondition,
		ExpiredDate:       expiry,
		ShareLink:         input.ShareLink,
		Image:             attachment.MergeSingle("", input.Files, dto.FieldImage),
		AddsPoster:        attachment.MergeSingle("", input.Files, dto.FieldAddsPoster),
		WatermarkImage:    attachment.MergeSingle("", input.Files, dto.FieldWatermarkImage),
	}
	c.Touch(uc.now())

	// A duplicate coupon code is rejected by the unique index and surfaces as-is.
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.populate(ctx, c)

	uc.events.Emit(ctx, entity, event.Created, c.ID, c)
	return c, nil
}

func (uc *couponUseCase) GetCoupon(ctx context.Context, id string) (*model.Coupon, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.populate(ctx, c)
	return c, nil
}

func (uc *couponUseCase) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ids := make([]string, 0, len(coupons))
	for i := range coupons {
		if id := coupons[i].StoreID(); id != "" {
			ids = append(ids, id)
		}
	}
	summaries, err := uc.summaries.FindSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range coupons {
		coupons[i].Store = summaries[coupons[i].StoreID()]
	}
	return coupons, nil
}

// UpdateCoupon applies a partial update. Sending storeName rebinds the coupon:
// a store id switches it to reference mode, free text to snapshot mode.
// Without storeName the current mode is kept; a snapshot-bound coupon still
// takes new category, location or plan values.
func (uc *couponUseCase) UpdateCoupon(ctx context.Context, input *dto.UpdateCouponInput) (*model.Coupon, error) {
	if strings.TrimSpace(input.CouponCode) == "" {
		return nil, apperror.Validation("Coupon code is required")
	}
	c, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil && strings.TrimSpace(*input.StoreName) != "" {
		attrs := c.Binding.Attributes()
		category, location, plan := attrs.Category, attrs.Location, string(attrs.Plan)
		if _, isSnapshot := c.Binding.(model.StoreSnapshot); !isSnapshot {
			// Reference attributes belong to the old store and are not carried over.
			category, location, plan = "", model.Location{}, ""
		}
		if input.Category != nil {
			category = *input.Category
		}
		if input.Location != nil {
			location = *input.Location
		}
		if input.Plan != nil {
			plan = *input.Plan
		}
		binding, err := uc.resolver.BindCoupon(ctx, *input.StoreName, category, location, plan)
		if err != nil {
			return nil, bindingError(err)
		}
		c.Binding = binding
	} else if snap, ok := c.Binding.(model.StoreSnapshot); ok && (input.Category != nil || input.Location != nil || input.Plan != nil) {
		category, location, plan := snap.Category, snap.Location, string(snap.Plan)
		if input.Category != nil {
			category = *input.Category
		}
		if input.Location != nil {
			location = *input.Location
		}
		if input.Plan != nil {
			plan = *input.Plan
		}
		rebuilt, err := storeref.BuildSnapshot(snap.StoreName, category, location, plan)
		if err != nil {
			return nil, bindingError(err)
		}
		c.Binding = rebuilt
	}

	c.CouponCode = strings.TrimSpace(input.CouponCode)
	if input.OfferTitle != nil {
		if strings.TrimSpace(input.OfferTitle.Highlight) == "" {
			return nil, apperror.Validation("offerTitle.highlight is required")
		}
		c.OfferTitle = *input.OfferTitle
	}
	if input.ExpiredDate != nil {
		expiry, err := parseExpiry(*input.ExpiredDate)
		if err != nil {
			return nil, err
		}
		c.ExpiredDate = expiry
	}
	setString(&c.Description, input.Description)
	setString(&c.TermsAndCondition, input.TermsAndCondition)
	setString(&c.ShareLink, input.ShareLink)
	c.Image = attachment.MergeSingle(c.Image, input.Files, dto.FieldImage)
	c.AddsPoster = attachment.MergeSingle(c.AddsPoster, input.Files, dto.FieldAddsPoster)
	c.WatermarkImage = attachment.MergeSingle(c.WatermarkImage, input.Files, dto.FieldWatermarkImage)

	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.populate(ctx, c)

	uc.events.Emit(ctx, entity, event.Updated, c.ID, c)
	return c, nil
}

func (uc *couponUseCase) DeleteCoupon(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("Coupon not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Coupon not found")
	}
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *couponUseCase) find(ctx context.Context, id string) (*model.Coupon, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("Coupon not found")
	}
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.NotFound("Coupon not found")
	}
	return c, nil
}

// populate attaches the referenced store's summary. A store that has since
// been deleted leaves Store nil.
func (uc *couponUseCase) populate(ctx context.Context, c *model.Coupon) {
	c.Store = nil
	id := c.StoreID()
	if id == "" {
		return
	}
	summaries, err := uc.summaries.FindSummaries(ctx, []string{id})
	if err != nil {
		uc.logger.Warn("failed to load store summary", zap.String("coupon_id", c.ID), zap.Error(err))
		return
	}
	c.Store = summaries[id]
}

func bindingError(err error) error {
	if storeref.IsClientError(err) {
		return apperror.Validation(err.Error())
	}
	return apperror.Internal(err)
}

func parseExpiry(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, apperror.Validation("expiredDate is required")
	}
	t, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperror.Validation(err.Error())
	}
	return t, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
