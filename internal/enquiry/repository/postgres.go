package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const enquiryColumns = `id, name, email, phone, subject, message, store_id, status, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, e *model.Enquiry) error {
	query := `
        INSERT INTO enquiries (id, name, email, phone, subject, message, store_id, status, created_at, updated_at)
        VALUES (:id, :name, :email, :phone, :subject, :message, :store_id, :status, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, e); err != nil {
		return fmt.Errorf("insert enquiry: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	var e model.Enquiry
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Enquiry, error) {
	enquiries := []model.Enquiry{}
	query := `SELECT ` + enquiryColumns + ` FROM enquiries ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &enquiries, query); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *PGRepository) Update(ctx context.Context, e *model.Enquiry) error {
	query := `
        UPDATE enquiries
        SET name = :name,
            email = :email,
            phone = :phone,
            subject = :subject,
            message = :message,
            store_id = :store_id,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, e); err != nil {
		return fmt.Errorf("update enquiry: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM enquiries WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
