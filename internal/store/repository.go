package store

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id string) (*model.Store, error)
	FindAll(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, store *model.Store) error
	Delete(ctx context.Context, id string) (bool, error)

	// FindSummaries returns the summaries of the stores that still exist, keyed by id.
	FindSummaries(ctx context.Context, ids []string) (map[string]*model.StoreSummary, error)
}
