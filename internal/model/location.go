package model

import (
	"database/sql/driver"
	"regexp"
	"strings"
)

type Location struct {
	District string `json:"district"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
	MapLink  string `json:"maplink,omitempty"`
}

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// IsEmpty reports whether the caller supplied no address parts at all.
func (l Location) IsEmpty() bool {
	return strings.TrimSpace(l.District) == "" &&
		strings.TrimSpace(l.City) == "" &&
		strings.TrimSpace(l.Pincode) == ""
}

// ValidPincode accepts an empty pincode or a six digit postal index number.
func (l Location) ValidPincode() bool {
	p := strings.TrimSpace(l.Pincode)
	return p == "" || pincodePattern.MatchString(p)
}

// WithoutMapLink drops the store-only map link before copying into coupons or jobs.
func (l Location) WithoutMapLink() Location {
	l.MapLink = ""
	return l
}

func (l Location) Value() (driver.Value, error) {
	return valueJSON(l)
}

func (l *Location) Scan(src any) error {
	return scanJSON(src, l)
}
