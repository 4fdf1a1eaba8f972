package dto

import (
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type CreateCouponInput struct {
	// StoreName is a store id or the name of a store that is not registered.
	StoreName string
	Category  string
	Location  model.Location
	Plan      string

	CouponCode        string
	OfferTitle        model.OfferTitle
	Description       string
	TermsAndCondition string
	ExpiredDate       string
	ShareLink         string
	Files             attachment.Files
}

// UpdateCouponInput carries only what the caller sent; nil means keep.
type UpdateCouponInput struct {
	ID        string
	StoreName *string
	Category  *string
	Location  *model.Location
	Plan      *string

	CouponCode        string
	OfferTitle        *model.OfferTitle
	Description       *string
	TermsAndCondition *string
	ExpiredDate       *string
	ShareLink         *string
	Files             attachment.Files
}

// Form field names for coupon uploads.
const (
	FieldImage          = "image"
	FieldAddsPoster     = "addsPoster"
	FieldWatermarkImage = "watermarkImage"
)
