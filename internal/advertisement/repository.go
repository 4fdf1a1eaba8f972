package advertisement

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, ad *model.Advertisement) error
	FindByID(ctx context.Context, id string) (*model.Advertisement, error)
	FindAll(ctx context.Context) ([]model.Advertisement, error)
	Update(ctx context.Context, ad *model.Advertisement) error
	Delete(ctx context.Context, id string) (bool, error)
}
