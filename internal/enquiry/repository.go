package enquiry

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, e *model.Enquiry) error
	FindByID(ctx context.Context, id string) (*model.Enquiry, error)
	FindAll(ctx context.Context) ([]model.Enquiry, error)
	Update(ctx context.Context, e *model.Enquiry) error
	Delete(ctx context.Context, id string) (bool, error)
}
