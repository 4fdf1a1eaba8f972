package model

import (
	"database/sql/driver"
	"strconv"

	"github.com/lib/pq"
)

type SocialMediaLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (s SocialMediaLinks) Value() (driver.Value, error) { return valueJSON(s) }
func (s *SocialMediaLinks) Scan(src any) error          { return scanJSON(src, s) }

// StoreItem is one entry of a store's services or products. ID is assigned
// when the item is first saved and never changes, so uploads and deletes can
// address the item regardless of its position.
type StoreItem struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

type StoreItems []StoreItem

func (s StoreItems) Value() (driver.Value, error) {
	if s == nil {
		return valueJSON([]StoreItem{})
	}
	return valueJSON([]StoreItem(s))
}

func (s *StoreItems) Scan(src any) error { return scanJSON(src, s) }

// IndexOf returns the position of the item with the given id, or -1.
func (s StoreItems) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range s {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Remove drops the item addressed by ref, which is either an item id or, for
// older clients, a decimal position. It reports whether anything was removed.
func (s StoreItems) Remove(ref string) (StoreItems, bool) {
	i := s.IndexOf(ref)
	if i < 0 {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 0 || n >= len(s) {
			return s, false
		}
		i = n
	}
	out := make(StoreItems, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), true
}

type Store struct {
	BaseModel
	StoreName        string           `db:"store_name" json:"storeName"`
	Category         string           `db:"category" json:"category"`
	Description      string           `db:"description" json:"description"`
	CoverImage       string           `db:"cover_image" json:"coverImage"`
	LogoImage        string           `db:"logo_image" json:"logoImage"`
	Plan             Plan             `db:"plan" json:"plan"`
	Review           string           `db:"review" json:"review"`
	Location         Location         `db:"location" json:"location"`
	GalleryImages    pq.StringArray   `db:"gallery_images" json:"galleryImages"`
	AboutMe          string           `db:"about_me" json:"aboutMe"`
	PhoneNumber      string           `db:"phone_number" json:"phoneNumber"`
	WebsiteLink      string           `db:"website_link" json:"websiteLink"`
	SocialMediaLinks SocialMediaLinks `db:"social_media_links" json:"socialMediaLinks"`
	Services         StoreItems       `db:"services" json:"services"`
	Products         StoreItems       `db:"products" json:"products"`
}

// StoreSummary is the subset of a store embedded in coupon, job and
// enquiry responses.
type StoreSummary struct {
	ID        string   `json:"_id"`
	StoreName string   `json:"storeName"`
	Category  string   `json:"category"`
	Plan      Plan     `json:"plan"`
	Location  Location `json:"location"`
}

func (s *Store) Summary() *StoreSummary {
	if s == nil {
		return nil
	}
	return &StoreSummary{
		ID:        s.ID,
		StoreName: s.StoreName,
		Category:  s.Category,
		Plan:      s.Plan,
		Location:  s.Location,
	}
}
