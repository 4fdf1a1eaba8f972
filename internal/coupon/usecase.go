package coupon

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type UseCase interface {
	CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error)
	GetCoupon(ctx context.Context, id string) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	UpdateCoupon(ctx context.Context, input *dto.UpdateCouponInput) (*model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
}
