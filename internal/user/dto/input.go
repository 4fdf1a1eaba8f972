package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Int decodes a JSON number or a numeric string; form-backed dashboards
// send ages as strings.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*i = Int(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = Int(n)
	return nil
}

type RegisterUserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	Age         Int    `json:"age"`
	Role        string `json:"role"`
	Address     string `json:"address"`
}

// UpdateUserInput keeps the stored value for every field that is absent or
// empty.
type UpdateUserInput struct {
	ID string `json:"-"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	Age         Int    `json:"age"`
	Role        string `json:"role"`
	Address     string `json:"address"`
}

// AdminSeed describes the admin account created at startup when missing.
type AdminSeed struct {
	Name        string
	Email       string
	PhoneNumber string
}
