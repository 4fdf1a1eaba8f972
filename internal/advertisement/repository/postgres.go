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

const adColumns = `id, category, hero, strap, coupon, slider, logo, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, ad *model.Advertisement) error {
	query := `
        INSERT INTO advertisements (id, category, hero, strap, coupon, slider, logo, created_at, updated_at)
        VALUES (:id, :category, :hero, :strap, :coupon, :slider, :logo, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, ad); err != nil {
		return fmt.Errorf("insert advertisement: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Advertisement, error) {
	var ad model.Advertisement
	query := `SELECT ` + adColumns + ` FROM advertisements WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &ad, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Advertisement, error) {
	ads := []model.Advertisement{}
	query := `SELECT ` + adColumns + ` FROM advertisements ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &ads, query); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *PGRepository) Update(ctx context.Context, ad *model.Advertisement) error {
	query := `
        UPDATE advertisements
        SET category = :category,
            hero = :hero,
            strap = :strap,
            coupon = :coupon,
            slider = :slider,
            logo = :logo,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, ad); err != nil {
		return fmt.Errorf("update advertisement: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM advertisements WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
