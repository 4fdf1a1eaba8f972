package dto

import (
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type CreateStoreInput struct {
	StoreName        string
	Category         string
	Description      string
	Plan             string
	Review           string
	Location         model.Location
	AboutMe          string
	PhoneNumber      string
	WebsiteLink      string
	SocialMediaLinks model.SocialMediaLinks
	Services         model.StoreItems
	Products         model.StoreItems
	Files            attachment.Files
}

// UpdateStoreInput carries only what the caller sent; nil means keep.
type UpdateStoreInput struct {
	ID               string
	StoreName        *string
	Category         *string
	Description      *string
	Plan             *string
	Review           *string
	Location         *model.Location
	AboutMe          *string
	PhoneNumber      *string
	WebsiteLink      *string
	SocialMediaLinks *model.SocialMediaLinks
	Services         *model.StoreItems
	Products         *model.StoreItems
	Files            attachment.Files
}

type ItemKind string

const (
	Services ItemKind = "services"
	Products ItemKind = "products"
)

// Form field names for store uploads.
const (
	FieldCoverImage    = "coverImage"
	FieldLogoImage     = "logoImage"
	FieldGalleryImages = "galleryImages"
	FieldServiceImages = "serviceImages"
	FieldProductImages = "productImages"
)
