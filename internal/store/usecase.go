package store

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/store/dto"
)

type UseCase interface {
	CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error)
	GetStore(ctx context.Context, id string) (*model.Store, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	UpdateStore(ctx context.Context, input *dto.UpdateStoreInput) (*model.Store, error)
	DeleteStore(ctx context.Context, id string) error

	// Item ops
	DeleteItem(ctx context.Context, storeID string, kind dto.ItemKind, ref string) (*model.Store, error)
}
