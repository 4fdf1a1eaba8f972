package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StoreAttributes are the store fields a coupon carries regardless of how it
// is bound to a store.
type StoreAttributes struct {
	Category string   `json:"category"`
	Location Location `json:"location"`
	Plan     Plan     `json:"plan"`
}

// StoreBinding ties a coupon to a store. It is either a StoreReference or a
// StoreSnapshot, never both and never neither.
type StoreBinding interface {
	Attributes() StoreAttributes
	storeBinding()
}

// StoreReference points at a registered store. The attributes are copied
// from the store when the binding is made and are not refreshed afterwards.
type StoreReference struct {
	StoreID string
	StoreAttributes
}

// StoreSnapshot describes a store that is not registered yet.
type StoreSnapshot struct {
	StoreName string
	StoreAttributes
}

func (r StoreReference) Attributes() StoreAttributes { return r.StoreAttributes }
func (s StoreSnapshot) Attributes() StoreAttributes  { return s.StoreAttributes }

func (StoreReference) storeBinding() {}
func (StoreSnapshot) storeBinding()  {}

type OfferTitle struct {
	Highlight string `json:"highlight"`
	Normal    string `json:"normal,omitempty"`
}

func (o OfferTitle) Value() (driver.Value, error) { return valueJSON(o) }
func (o *OfferTitle) Scan(src any) error          { return scanJSON(src, o) }

type Coupon struct {
	BaseModel
	Binding           StoreBinding
	CouponCode        string
	OfferTitle        OfferTitle
	Description       string
	TermsAndCondition string
	ExpiredDate       time.Time
	ShareLink         string
	Image             string
	AddsPoster        string
	WatermarkImage    string

	// Store is filled on reads for reference-bound coupons whose store still exists.
	Store *StoreSummary
}

// StoreID returns the referenced store id, or "" for snapshot-bound coupons.
func (c *Coupon) StoreID() string {
	if ref, ok := c.Binding.(StoreReference); ok {
		return ref.StoreID
	}
	return ""
}

type storeInfoJSON struct {
	StoreName string   `json:"storeName"`
	Category  string   `json:"category"`
	Location  Location `json:"location"`
	Plan      Plan     `json:"plan"`
}

type couponJSON struct {
	ID                string         `json:"_id"`
	StoreName         string         `json:"storeName,omitempty"`
	Store             *StoreSummary  `json:"store,omitempty"`
	StoreInfo         *storeInfoJSON `json:"storeInfo,omitempty"`
	Category          string         `json:"category,omitempty"`
	Location          *Location      `json:"location,omitempty"`
	Plan              Plan           `json:"plan,omitempty"`
	CouponCode        string         `json:"couponCode"`
	OfferTitle        OfferTitle     `json:"offerTitle"`
	Description       string         `json:"description"`
	TermsAndCondition string         `json:"termsAndCondition"`
	ExpiredDate       time.Time      `json:"expiredDate"`
	ShareLink         string         `json:"shareLink"`
	Image             string         `json:"image"`
	AddsPoster        string         `json:"addsPoster"`
	WatermarkImage    string         `json:"watermarkImage"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// MarshalJSON renders the dashboard shape: reference-bound coupons expose
// storeName (the id) plus the copied attributes at top level, snapshot-bound
// coupons expose a storeInfo object.
func (c Coupon) MarshalJSON() ([]byte, error) {
	out := couponJSON{
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
	case StoreReference:
		loc := b.Location
		out.StoreName = b.StoreID
		out.Store = c.Store
		out.Category = b.Category
		out.Location = &loc
		out.Plan = b.Plan
	case StoreSnapshot:
		out.StoreInfo = &storeInfoJSON{
			StoreName: b.StoreName,
			Category:  b.Category,
			Location:  b.Location,
			Plan:      b.Plan,
		}
	}
	return json.Marshal(out)
}
