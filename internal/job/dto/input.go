package dto

import "github.com/fekuna/omnipos-directory-service/internal/model"

type CreateJobInput struct {
	JobName         string   `json:"jobName"`
	Title           string   `json:"title"`
	Salary          string   `json:"salary"`
	Qualification   string   `json:"qualification"`
	Description     string   `json:"description"`
	Mode            string   `json:"mode"`
	Skills          []string `json:"skills"`
	ApplicationLink string   `json:"applicationLink"`

	// StoreName is a store id, or the name of a store to create.
	StoreName string `json:"storeName"`

	// Used only when a store has to be created.
	Location    model.Location `json:"location"`
	Logo        string         `json:"logo"`
	PhoneNumber string         `json:"phoneNumber"`
}

// UpdateJobInput decodes a partial JSON body; absent keys stay nil.
type UpdateJobInput struct {
	ID string `json:"-"`

	JobName         *string   `json:"jobName"`
	Title           *string   `json:"title"`
	Salary          *string   `json:"salary"`
	Qualification   *string   `json:"qualification"`
	Description     *string   `json:"description"`
	Mode            *string   `json:"mode"`
	Skills          *[]string `json:"skills"`
	ApplicationLink *string   `json:"applicationLink"`

	StoreName   *string         `json:"storeName"`
	Location    *model.Location `json:"location"`
	Logo        *string         `json:"logo"`
	PhoneNumber *string         `json:"phoneNumber"`
}
