package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/user"
	"github.com/fekuna/omnipos-directory-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const userColumns = `id, name, email, phone_number, gender, age, role, address, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, name, email, phone_number, gender, age, role, address, created_at, updated_at)
        VALUES (:id, :name, :email, :phone_number, :gender, :age, :role, :address, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		return translate("insert user", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *PGRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, "phone_number", phone)
}

// findOne looks a user up by one of the indexed columns above.
func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &u, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET name = :name,
            email = :email,
            phone_number = :phone_number,
            gender = :gender,
            age = :age,
            role = :role,
            address = :address,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, u); err != nil {
		return translate("update user", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// translate maps unique violations on email or phone to the domain errors.
func translate(op string, err error) error {
	if postgres.IsUniqueViolation(err) {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "users_email_key":
				return user.ErrEmailExists
			case "users_phone_number_key":
				return user.ErrPhoneExists
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
