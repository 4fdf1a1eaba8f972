package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/user"
	"github.com/fekuna/omnipos-directory-service/internal/user/dto"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"go.uber.org/zap"
)

const entity = "user"

type userUseCase struct {
	repo   user.Repository
	events *event.Emitter
	logger logger.ZapLogger
	now    func() time.Time
}

func NewUserUseCase(repo user.Repository, events *event.Emitter, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

func (uc *userUseCase) RegisterUser(ctx context.Context, input *dto.RegisterUserInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.PhoneNumber)
	if name == "" || email == "" || phone == "" || strings.TrimSpace(input.Gender) == "" || input.Age == 0 {
		return nil, apperror.Validation("All fields are required")
	}

	u := &model.User{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		Age:         int(input.Age),
		Address:     strings.TrimSpace(input.Address),
	}
	var err error
	if u.Gender, err = model.ParseGender(input.Gender); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if u.Role, err = model.ParseRole(input.Role); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := checkAge(u.Age); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, u); err != nil {
		return nil, err
	}

	u.Touch(uc.now())
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, repoError(err)
	}

	uc.events.Emit(ctx, entity, event.Created, u.ID, u)
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	return uc.find(ctx, id)
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	keep(&u.Name, strings.TrimSpace(input.Name))
	keep(&u.Email, normalizeEmail(input.Email))
	keep(&u.PhoneNumber, strings.TrimSpace(input.PhoneNumber))
	keep(&u.Address, strings.TrimSpace(input.Address))
	if input.Gender != "" {
		if u.Gender, err = model.ParseGender(input.Gender); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	if input.Role != "" {
		if u.Role, err = model.ParseRole(input.Role); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	if input.Age != 0 {
		u.Age = int(input.Age)
		if err := checkAge(u.Age); err != nil {
			return nil, err
		}
	}
	if err := uc.checkUnique(ctx, u); err != nil {
		return nil, err
	}

	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, repoError(err)
	}

	uc.events.Emit(ctx, entity, event.Updated, u.ID, u)
	return u, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	if !model.IsValidID(id) {
		return apperror.NotFound("User not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.NotFound("User not found")
	}
	uc.events.Emit(ctx, entity, event.Deleted, id, nil)
	return nil
}

func (uc *userUseCase) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, apperror.Validation("Email is required")
	}
	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return u != nil, nil
}

// EnsureAdmin creates the seed admin unless a user with its email exists.
func (uc *userUseCase) EnsureAdmin(ctx context.Context, seed *dto.AdminSeed) (bool, error) {
	exists, err := uc.EmailExists(ctx, seed.Email)
	if err != nil {
		return false, err
	}
	if exists {
		uc.logger.Info("admin already exists", zap.String("email", seed.Email))
		return false, nil
	}

	u, err := uc.RegisterUser(ctx, &dto.RegisterUserInput{
		Name:        seed.Name,
		Email:       seed.Email,
		PhoneNumber: seed.PhoneNumber,
		Gender:      string(model.GenderMale),
		Age:         25,
		Role:        string(model.RoleAdmin),
	})
	if err != nil {
		return false, fmt.Errorf("seed admin %s: %w", seed.Email, err)
	}
	uc.logger.Info("default admin created", zap.String("user_id", u.ID), zap.String("email", u.Email))
	return true, nil
}

// checkUnique reports taken email or phone numbers before the insert so the
// caller gets a readable message. The unique indexes still guard races.
func (uc *userUseCase) checkUnique(ctx context.Context, u *model.User) error {
	other, err := uc.repo.FindByEmail(ctx, u.Email)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != u.ID {
		return apperror.Validation(user.ErrEmailExists.Error())
	}
	other, err = uc.repo.FindByPhone(ctx, u.PhoneNumber)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != u.ID {
		return apperror.Validation(user.ErrPhoneExists.Error())
	}
	return nil
}

func (uc *userUseCase) find(ctx context.Context, id string) (*model.User, error) {
	if !model.IsValidID(id) {
		return nil, apperror.NotFound("User not found")
	}
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.NotFound("User not found")
	}
	return u, nil
}

func repoError(err error) error {
	if errors.Is(err, user.ErrEmailExists) || errors.Is(err, user.ErrPhoneExists) {
		return apperror.Validation(err.Error())
	}
	return apperror.Internal(err)
}

func checkAge(age int) error {
	if age < model.MinUserAge || age > model.MaxUserAge {
		return apperror.Validation(fmt.Sprintf("age must be between %d and %d", model.MinUserAge, model.MaxUserAge))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func keep(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
