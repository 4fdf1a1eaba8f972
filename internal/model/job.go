package model

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type JobMode string

const (
	JobModeOnsite JobMode = "onsite"
	JobModeRemote JobMode = "remote"
	JobModeHybrid JobMode = "hybrid"
)

func ParseJobMode(raw string) (JobMode, error) {
	m := JobMode(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case "":
		return JobModeOnsite, nil
	case JobModeOnsite, JobModeRemote, JobModeHybrid:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be one of onsite, remote, hybrid", raw)
}

// Job always references a concrete store. Location, Logo and PhoneNumber are
// copied from that store when the job is assembled.
type Job struct {
	BaseModel
	JobName         string         `db:"job_name" json:"jobName"`
	Title           string         `db:"title" json:"title"`
	Salary          string         `db:"salary" json:"salary"`
	Qualification   string         `db:"qualification" json:"qualification"`
	Description     string         `db:"description" json:"description"`
	Mode            JobMode        `db:"mode" json:"mode"`
	Skills          pq.StringArray `db:"skills" json:"skills"`
	ApplicationLink string         `db:"application_link" json:"applicationLink"`
	StoreID         string         `db:"store_id" json:"storeName"`
	Location        Location       `db:"location" json:"location"`
	Logo            string         `db:"logo" json:"logo"`
	PhoneNumber     string         `db:"phone_number" json:"phoneNumber"`

	Store *StoreSummary `db:"-" json:"store,omitempty"`
}
