package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const storeColumns = `id, store_name, category, description, cover_image, logo_image, plan, review,
	location, gallery_images, about_me, phone_number, website_link, social_media_links,
	services, products, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, s *model.Store) error {
	query := `
        INSERT INTO stores (
            id, store_name, category, description, cover_image, logo_image, plan, review,
            location, gallery_images, about_me, phone_number, website_link, social_media_links,
            services, products, created_at, updated_at
        )
        VALUES (
            :id, :store_name, :category, :description, :cover_image, :logo_image, :plan, :review,
            :location, :gallery_images, :about_me, :phone_number, :website_link, :social_media_links,
            :services, :products, :created_at, :updated_at
        )
    `
	if s.GalleryImages == nil {
		s.GalleryImages = pq.StringArray{}
	}
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Store, error) {
	stores := []model.Store{}
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &stores, query); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Store) error {
	query := `
        UPDATE stores
        SET store_name = :store_name,
            category = :category,
            description = :description,
            cover_image = :cover_image,
            logo_image = :logo_image,
            plan = :plan,
            review = :review,
            location = :location,
            gallery_images = :gallery_images,
            about_me = :about_me,
            phone_number = :phone_number,
            website_link = :website_link,
            social_media_links = :social_media_links,
            services = :services,
            products = :products,
            updated_at = :updated_at
        WHERE id = :id
    `
	if s.GalleryImages == nil {
		s.GalleryImages = pq.StringArray{}
	}
	if _, err := r.DB.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM stores WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) FindSummaries(ctx context.Context, ids []string) (map[string]*model.StoreSummary, error) {
	out := make(map[string]*model.StoreSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		ID        string         `db:"id"`
		StoreName string         `db:"store_name"`
		Category  string         `db:"category"`
		Plan      model.Plan     `db:"plan"`
		Location  model.Location `db:"location"`
	}
	query := `SELECT id, store_name, category, plan, location FROM stores WHERE id = ANY($1)`
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = &model.StoreSummary{
			ID:        row.ID,
			StoreName: row.StoreName,
			Category:  row.Category,
			Plan:      row.Plan,
			Location:  row.Location,
		}
	}
	return out, nil
}
