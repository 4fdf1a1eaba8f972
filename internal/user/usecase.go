package user

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/user/dto"
)

type UseCase interface {
	RegisterUser(ctx context.Context, input *dto.RegisterUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	EnsureAdmin(ctx context.Context, seed *dto.AdminSeed) (bool, error)
}
