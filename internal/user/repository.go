package user

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

// Returned by Create and Update when a unique constraint rejects the row.
var (
	ErrEmailExists = errors.New("Email already exists")
	ErrPhoneExists = errors.New("Phone number already exists")
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) (bool, error)
}
