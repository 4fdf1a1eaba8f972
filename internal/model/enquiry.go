package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

type EnquiryStatus string

const (
	EnquiryPending  EnquiryStatus = "pending"
	EnquiryResolved EnquiryStatus = "resolved"
)

func ParseEnquiryStatus(raw string) (EnquiryStatus, error) {
	s := EnquiryStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case EnquiryPending, EnquiryResolved:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q: must be pending or resolved", raw)
}

type Enquiry struct {
	BaseModel
	Name    string         `db:"name" json:"name"`
	Email   string         `db:"email" json:"email"`
	Phone   string         `db:"phone" json:"phone"`
	Subject string         `db:"subject" json:"subject"`
	Message string         `db:"message" json:"message"`
	StoreID sql.NullString `db:"store_id" json:"-"`
	Status  EnquiryStatus  `db:"status" json:"status"`

	Store *StoreSummary `db:"-" json:"store,omitempty"`
}

type enquiryAlias Enquiry

// MarshalJSON exposes the optional store link as storeName.
func (e Enquiry) MarshalJSON() ([]byte, error) {
	out := struct {
		enquiryAlias
		StoreName string `json:"storeName,omitempty"`
	}{enquiryAlias: enquiryAlias(e)}
	if e.StoreID.Valid {
		out.StoreName = e.StoreID.String
	}
	return json.Marshal(out)
}
