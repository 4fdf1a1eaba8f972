package usecase

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/enquiry"
	"github.com/fekuna/omnipos-directory-service/internal/enquiry/dto"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
)

const entity = "enquiry"

var errInvalidStore = apperror.Validation("storeName must be a store id")

type enquiryUseCase struct {
	repo      enquiry.Repository
	summaries storeref.Summaries
	events    *event.Emitter
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewEnquiryUseCase(repo enquiry.Repository, summaries storeref.Summaries, events *event.Emitter, log logger.ZapLogger) enquiry.UseCase {
	return &enquiryUseCase{
		repo:      repo,
		summaries: summaries,
		events:    events,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *enquiryUseCase) CreateEnquiry(ctx context.Context, input *dto.CreateEnquiryInput) (*model.Enquiry, error) {
	e := &model.Enquiry{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
		Status:  model.EnquiryPending,
	}
	if input.Status != "" {
		status, err := model.ParseEnquiryStatus(input.Status)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		e.Status = status
	}
	storeID, err := parseStoreID(input.StoreName)
	if err != nil {
		return nil, err
	}
	e.StoreID = storeID
	if err := validate(e); err != nil {
		return nil, err
	}

	e.Touch(uc.now())
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Created, e.ID, e)
	return e, nil
}

func (uc *enquiryUseCase) GetEnquiry(ctx context.Context, id string) (*model.Enquiry, error) {
	e, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.StoreID.Valid {
		summaries, err := uc.summaries.FindSummaries(ctx, []string{e.StoreID.String})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		e.Store = summaries[e.StoreID.String]
	}
	return e, nil
}

func (uc *enquiryUseCase) ListEnquiries(ctx context.Context) ([]model.Enquiry, error) {
	enquiries, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var ids []string
	for i := range enquiries {
		if enquiries[i].StoreID.Valid {
			ids = append(ids, enquiries[i].StoreID.String)
		}
	}
	if len(ids) == 0 {
		return enquiries, nil
	}
	summaries, err := uc.summaries.FindSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range enquiries {
		if enquiries[i].StoreID.Valid {
			enquiries[i].Store = summaries[enquiries[i].StoreID.String]
		}
	}
	return enquiries, nil
}

// UpdateEnquiry is mostly used to move an enquiry from pending to resolved,
// but any field may be changed.
func (uc *enquiryUseCase) UpdateEnquiry(ctx context.Context, input *dto.UpdateEnquiryInput) (*model.Enquiry, error) {
	e, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	setTrimmed(&e.Name, input.Name)
	setTrimmed(&e.Email, input.Email)
	setTrimmed(&e.Phone, input.Phone)
	setTrimmed(&e.Subject, input.Subject)
	if input.Message != nil {
		e.Message = *input.Message
	}
	if input.Status != nil {
		status, err := model.ParseEnquiryStatus(*input.Status)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		e.Status = status
	}
	if input.StoreName != nil {
		storeID, err := parseStoreID(*input.StoreName)
		if err != nil {
			return nil, err
		}
		e.StoreID = storeID
	}
	if err := validate(e); err != nil {
		return nil, err
	}

	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.events.Emit(ctx, entity, event.Updated, e.ID, e)
	return e, nil
}

func (uc *enquiryUseCase) DeleteEnquiry(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("Enquiry not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Enquiry not found")
	}
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *enquiryUseCase) find(ctx context.Context, id string) (*model.Enquiry, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("Enquiry not found")
	}
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if e == nil {
		return nil, apperror.NotFound("Enquiry not found")
	}
	return e, nil
}

func validate(e *model.Enquiry) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", e.Name},
		{"email", e.Email},
		{"subject", e.Subject},
		{"message", strings.TrimSpace(e.Message)},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperror.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// parseStoreID accepts an empty value as "no store". Anything else has to
// be a store id; existence is not checked.
func parseStoreID(raw string) (sql.NullString, error) {
	if strings.TrimSpace(raw) == "" {
		return sql.NullString{}, nil
	}
	cand, err := storeref.Classify(raw)
	if err != nil || cand.Kind != storeref.Reference {
		return sql.NullString{}, errInvalidStore
	}
	return sql.NullString{String: cand.Value, Valid: true}, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
