package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

var errNoBinding = errors.New("coupon has no store binding")

// couponRow is the table shape. Exactly one of StoreID and SnapshotStoreName
// is valid; the table enforces it with a CHECK constraint.
type couponRow struct {
	ID                string           `db:"id"`
	StoreID           sql.NullString   `db:"store_id"`
	SnapshotStoreName sql.NullString   `db:"snapshot_store_name"`
	Category          string           `db:"category"`
	Location          model.Location   `db:"location"`
	Plan              string           `db:"plan"`
	CouponCode        string           `db:"coupon_code"`
	OfferTitle        model.OfferTitle `db:"offer_title"`
	Description       string           `db:"description"`
	TermsAndCondition string           `db:"terms_and_condition"`
	ExpiredDate       time.Time        `db:"expired_date"`
	ShareLink         string           `db:"share_link"`
	Image             string           `db:"image"`
	AddsPoster        string           `db:"adds_poster"`
	WatermarkImage    string           `db:"watermark_image"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`
}

func toRow(c *model.Coupon) (*couponRow, error) {
	row := &couponRow{
		ID:                c.ID,
		CouponCode:        c.CouponCode,
		OfferTitle:        c.OfferTitle,
		Description:       c.Description,
		TermsAndCondition: c.TermsAndCondition,
		ExpiredDate:       c.ExpiredDate,
		ShareLink:         c.ShareLink,
		Image:             c.Image,
		AddsPoster:        c.AddsPoster,
		WatermarkImage:    c.WatermarkImage,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	switch b := c.Binding.(type) {
	case model.StoreReference:
		row.StoreID = sql.NullString{String: b.StoreID, Valid: true}
	case model.StoreSnapshot:
		row.SnapshotStoreName = sql.NullString{String: b.StoreName, Valid: true}
	default:
		return nil, errNoBinding
	}
	attrs := c.Binding.Attributes()
	row.Category = attrs.Category
	row.Location = attrs.Location
	row.Plan = string(attrs.Plan)
	return row, nil
}

func (r *couponRow) toModel() (*model.Coupon, error) {
	attrs := model.StoreAttributes{
		Category: r.Category,
		Location: r.Location,
		Plan:     model.Plan(r.Plan),
	}
	c := &model.Coupon{
		BaseModel:         model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		CouponCode:        r.CouponCode,
		OfferTitle:        r.OfferTitle,
		Description:       r.Description,
		TermsAndCondition: r.TermsAndCondition,
		ExpiredDate:       r.ExpiredDate,
		ShareLink:         r.ShareLink,
		Image:             r.Image,
		AddsPoster:        r.AddsPoster,
		WatermarkImage:    r.WatermarkImage,
	}
	switch {
	case r.StoreID.Valid:
		c.Binding = model.StoreReference{StoreID: r.StoreID.String, StoreAttributes: attrs}
	case r.SnapshotStoreName.Valid:
		c.Binding = model.StoreSnapshot{StoreName: r.SnapshotStoreName.String, StoreAttributes: attrs}
	default:
		return nil, fmt.Errorf("coupon %s: %w", r.ID, errNoBinding)
	}
	return c, nil
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const couponColumns = `id, store_id, snapshot_store_name, category, location, plan, coupon_code,
	offer_title, description, terms_and_condition, expired_date, share_link, image,
	adds_poster, watermark_image, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, c *model.Coupon) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO coupons (
            id, store_id, snapshot_store_name, category, location, plan, coupon_code,
            offer_title, description, terms_and_condition, expired_date, share_link, image,
            adds_poster, watermark_image, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :snapshot_store_name, :category, :location, :plan, :coupon_code,
            :offer_title, :description, :terms_and_condition, :expired_date, :share_link, :image,
            :adds_poster, :watermark_image, :created_at, :updated_at
        )
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	var row couponRow
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Coupon, error) {
	var rows []couponRow
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	coupons := make([]model.Coupon, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Coupon) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	query := `
        UPDATE coupons
        SET store_id = :store_id,
            snapshot_store_name = :snapshot_store_name,
            category = :category,
            location = :location,
            plan = :plan,
            coupon_code = :coupon_code,
            offer_title = :offer_title,
            description = :description,
            terms_and_condition = :terms_and_condition,
            expired_date = :expired_date,
            share_link = :share_link,
            image = :image,
            adds_poster = :adds_poster,
            watermark_image = :watermark_image,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM coupons WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
