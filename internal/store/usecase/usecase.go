package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/store"
	"github.com/fekuna/omnipos-directory-service/internal/store/dto"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const entity = "store"

type storeUseCase struct {
	repo   store.Repository
	events *event.Emitter
	logger logger.ZapLogger
	now    func() time.Time
}

func NewStoreUseCase(repo store.Repository, events *event.Emitter, log logger.ZapLogger) store.UseCase {
	return &storeUseCase{
		repo:   repo,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

func (uc *storeUseCase) CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error) {
	plan := model.DefaultPlan
	if strings.TrimSpace(input.Plan) != "" {
		p, err := model.ParsePlan(input.Plan)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		plan = p
	}

	s := &model.Store{
		StoreName:        strings.TrimSpace(input.StoreName),
		Category:         strings.TrimSpace(input.Category),
		Description:      input.Description,
		Plan:             plan,
		Review:           input.Review,
		Location:         input.Location,
		AboutMe:          input.AboutMe,
		PhoneNumber:      input.PhoneNumber,
		WebsiteLink:      input.WebsiteLink,
		SocialMediaLinks: input.SocialMediaLinks,
		CoverImage:       attachment.MergeSingle("", input.Files, dto.FieldCoverImage),
		LogoImage:        attachment.MergeSingle("", input.Files, dto.FieldLogoImage),
		GalleryImages:    pq.StringArray(attachment.MergeGallery(nil, input.Files, dto.FieldGalleryImages)),
		Services:         attachment.MergeItems(nil, input.Services, input.Files, dto.FieldServiceImages),
		Products:         attachment.MergeItems(nil, input.Products, input.Files, dto.FieldProductImages),
	}
	if err := validate(s); err != nil {
		return nil, err
	}

	s.Touch(uc.now())
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Created, s.ID, s)
	return s, nil
}

func (uc *storeUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	return uc.find(ctx, id)
}

func (uc *storeUseCase) ListStores(ctx context.Context) ([]model.Store, error) {
	stores, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stores, nil
}

func (uc *storeUseCase) UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error) {
	s, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	setString(&s.StoreName, trimmed(input.StoreName))
	setString(&s.Category, trimmed(input.Category))
	setString(&s.Description, input.Description)
	setString(&s.Review, input.Review)
	setString(&s.AboutMe, input.AboutMe)
	setString(&s.PhoneNumber, input.PhoneNumber)
	setString(&s.WebsiteLink, input.WebsiteLink)
	if input.Plan != nil {
		p, err := model.ParsePlan(*input.Plan)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		s.Plan = p
	}
	if input.Location != nil {
		s.Location = *input.Location
	}
	if input.SocialMediaLinks != nil {
		s.SocialMediaLinks = *input.SocialMediaLinks
	}

	s.CoverImage = attachment.MergeSingle(s.CoverImage, input.Files, dto.FieldCoverImage)
	s.LogoImage = attachment.MergeSingle(s.LogoImage, input.Files, dto.FieldLogoImage)
	s.GalleryImages = pq.StringArray(attachment.MergeGallery(s.GalleryImages, input.Files, dto.FieldGalleryImages))
	if input.Services != nil {
		s.Services = attachment.MergeItems(s.Services, *input.Services, input.Files, dto.FieldServiceImages)
	}
	if input.Products != nil {
		s.Products = attachment.MergeItems(s.Products, *input.Products, input.Files, dto.FieldProductImages)
	}
	if err := validate(s); err != nil {
		return nil, err
	}

	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Updated, s.ID, s)
	return s, nil
}

func (uc *storeUseCase) DeleteStore(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("Store not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Store not found")
	}
	// Coupons, jobs and enquiries that reference this store are left as they are.
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *storeUseCase) DeleteItem(ctx context.Context, storeID string, kind dto.ItemKind, ref string) (*model.Store, error) {
	s, err := uc.find(ctx, storeID)
	if err != nil {
		return nil, err
	}

	var removed bool
	switch kind {
	case dto.Services:
		s.Services, removed = s.Services.Remove(ref)
		if !removed {
			return nil, apperror.NotFound("Service not found")
		}
	case dto.Products:
		s.Products, removed = s.Products.Remove(ref)
		if !removed {
			return nil, apperror.NotFound("Product not found")
		}
	default:
		return nil, apperror.NotFound("Not found")
	}

	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, apperror.Internal(err)
	}
	uc.logger.Debug("store item removed",
		zap.String("store_id", s.ID),
		zap.String("kind", string(kind)),
		zap.String("ref", ref),
	)
	uc.events.Emit(ctx, entity, event.Updated, s.ID, s)
	return s, nil
}

func (uc *storeUseCase) find(ctx context.Context, id string) (*model.Store, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("Store not found")
	}
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if s == nil {
		return nil, apperror.NotFound("Store not found")
	}
	return s, nil
}

func validate(s *model.Store) error {
	if s.StoreName == "" {
		return apperror.Validation("storeName is required")
	}
	if s.Category == "" {
		return apperror.Validation("category is required")
	}
	if !s.Location.ValidPincode() {
		return apperror.Validation("pincode must be a 6 digit number")
	}
	for _, it := range s.Services {
		if strings.TrimSpace(it.Title) == "" {
			return apperror.Validation("service title is required")
		}
	}
	for _, it := range s.Products {
		if strings.TrimSpace(it.Title) == "" {
			return apperror.Validation("product title is required")
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
