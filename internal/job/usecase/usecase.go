package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/job"
	"github.com/fekuna/omnipos-directory-service/internal/job/dto"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const entity = "job"

type jobUseCase struct {
	repo      job.Repository
	resolver  *storeref.Resolver
	summaries storeref.Summaries
	events    *event.Emitter
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewJobUseCase(repo job.Repository, resolver *storeref.Resolver, summaries storeref.Summaries, events *event.Emitter, log logger.ZapLogger) job.UseCase {
	return &jobUseCase{
		repo:      repo,
		resolver:  resolver,
		summaries: summaries,
		events:    events,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *jobUseCase) CreateJob(ctx context.Context, input *dto.CreateJobInput) (*model.Job, error) {
	if strings.TrimSpace(input.JobName) == "" || strings.TrimSpace(input.Title) == "" {
		return nil, apperror.Validation("jobName and title are required")
	}
	mode, err := model.ParseJobMode(input.Mode)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	store, err := uc.ensureStore(ctx, input.StoreName, storeref.NewStoreFields{
		Location:    input.Location,
		Logo:        input.Logo,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	j := storeref.AssembleJob(store, storeref.JobFields{
		JobName:         strings.TrimSpace(input.JobName),
		Title:           strings.TrimSpace(input.Title),
		Salary:          input.Salary,
		Qualification:   input.Qualification,
		Description:     input.Description,
		Mode:            mode,
		Skills:          cleanSkills(input.Skills),
		ApplicationLink: input.ApplicationLink,
	})
	j.Touch(uc.now())

	if err := uc.repo.Create(ctx, j); err != nil {
		return nil, apperror.Internal(err)
	}
	j.Store = store.Summary()

	uc.events.Emit(ctx, entity, event.Created, j.ID, j)
	return j, nil
}

func (uc *jobUseCase) GetJob(ctx context.Context, id string) (*model.Job, error) {
	j, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	summaries, err := uc.summaries.FindSummaries(ctx, []string{j.StoreID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	j.Store = summaries[j.StoreID]
	return j, nil
}

func (uc *jobUseCase) ListJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].StoreID)
	}
	summaries, err := uc.summaries.FindSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range jobs {
		jobs[i].Store = summaries[jobs[i].StoreID]
	}
	return jobs, nil
}

// UpdateJob applies a partial update. A non-empty storeName re-targets the
// job with the same resolve-or-create rules as creation and re-copies the
// store's contact details. Job fields are validated before any store is
// created.
func (uc *jobUseCase) UpdateJob(ctx context.Context, input *dto.UpdateJobInput) (*model.Job, error) {
	j, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	jobName, title := j.JobName, j.Title
	setString(&jobName, trimmed(input.JobName))
	setString(&title, trimmed(input.Title))
	if jobName == "" || title == "" {
		return nil, apperror.Validation("jobName and title are required")
	}
	mode := j.Mode
	if input.Mode != nil {
		if mode, err = model.ParseJobMode(*input.Mode); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	retarget := input.StoreName != nil && strings.TrimSpace(*input.StoreName) != ""
	if !retarget && input.Location != nil && !input.Location.ValidPincode() {
		return nil, apperror.Validation("invalid pincode: must be 6 digits")
	}

	if retarget {
		fields := storeref.NewStoreFields{}
		if input.Location != nil {
			fields.Location = *input.Location
		}
		if input.Logo != nil {
			fields.Logo = *input.Logo
		}
		if input.PhoneNumber != nil {
			fields.PhoneNumber = *input.PhoneNumber
		}
		store, err := uc.ensureStore(ctx, *input.StoreName, fields)
		if err != nil {
			return nil, err
		}
		storeref.BindJob(j, store)
	} else {
		if input.Location != nil {
			j.Location = input.Location.WithoutMapLink()
		}
		setString(&j.Logo, input.Logo)
		setString(&j.PhoneNumber, input.PhoneNumber)
	}

	j.JobName, j.Title, j.Mode = jobName, title, mode
	setString(&j.Salary, input.Salary)
	setString(&j.Qualification, input.Qualification)
	setString(&j.Description, input.Description)
	setString(&j.ApplicationLink, input.ApplicationLink)
	if input.Skills != nil {
		j.Skills = cleanSkills(*input.Skills)
	}

	j.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, j); err != nil {
		return nil, apperror.Internal(err)
	}
	j.Store = uc.summary(ctx, j)

	uc.events.Emit(ctx, entity, event.Updated, j.ID, j)
	return j, nil
}

// DeleteJob never looks at the job's store, so jobs whose store is gone can
// still be removed.
func (uc *jobUseCase) DeleteJob(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("Job not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("Job not found")
	}
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *jobUseCase) ensureStore(ctx context.Context, storeName string, fields storeref.NewStoreFields) (*model.Store, error) {
	store, created, err := uc.resolver.EnsureStore(ctx, storeName, fields)
	if err != nil {
		if storeref.IsClientError(err) {
			return nil, apperror.Validation(err.Error())
		}
		return nil, apperror.Internal(err)
	}
	if created {
		uc.logger.Info("store created for job", zap.String("store_id", store.ID), zap.String("store_name", store.StoreName))
		uc.events.Emit(ctx, "store", event.Created, store.ID, store)
	}
	return store, nil
}

// summary looks up the store summary for j. A lookup failure is logged and
// leaves the summary empty, since the write already succeeded.
func (uc *jobUseCase) summary(ctx context.Context, j *model.Job) *model.StoreSummary {
	summaries, err := uc.summaries.FindSummaries(ctx, []string{j.StoreID})
	if err != nil {
		uc.logger.Warn("failed to load store summary", zap.String("job_id", j.ID), zap.Error(err))
		return nil
	}
	return summaries[j.StoreID]
}

func (uc *jobUseCase) find(ctx context.Context, id string) (*model.Job, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("Job not found")
	}
	j, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if j == nil {
		return nil, apperror.NotFound("Job not found")
	}
	return j, nil
}

func cleanSkills(skills []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
