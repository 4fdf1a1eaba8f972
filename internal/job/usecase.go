package job

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/job/dto"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type UseCase interface {
	CreateJob(ctx context.Context, input *dto.CreateJobInput) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	UpdateJob(ctx context.Context, input *dto.UpdateJobInput) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
}
