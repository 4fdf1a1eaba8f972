package coupon

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByID(ctx context.Context, id string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) (bool, error)
}
