package advertisement

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/advertisement/dto"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type UseCase interface {
	CreateAdvertisement(ctx context.Context, input *dto.AdInput) (*model.Advertisement, error)
	GetAdvertisement(ctx context.Context, id string) (*model.Advertisement, error)
	ListAdvertisements(ctx context.Context) ([]model.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, id string, input *dto.AdInput) (*model.Advertisement, error)
	DeleteAdvertisement(ctx context.Context, id string) error
}
