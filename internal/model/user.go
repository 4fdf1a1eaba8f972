package model

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func ParseGender(raw string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(raw)))
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	}
	return "", fmt.Errorf("invalid gender %q: must be one of male, female, other", raw)
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("invalid role %q: must be user or admin", raw)
}

const (
	MinUserAge = 1
	MaxUserAge = 120
)

type User struct {
	BaseModel
	Name        string `db:"name" json:"name"`
	Email       string `db:"email" json:"email"`
	PhoneNumber string `db:"phone_number" json:"phoneNumber"`
	Gender      Gender `db:"gender" json:"gender"`
	Age         int    `db:"age" json:"age"`
	Role        Role   `db:"role" json:"role"`
	Address     string `db:"address" json:"address"`
}
