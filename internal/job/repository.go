package job

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	FindAll(ctx context.Context) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id string) (bool, error)
}
