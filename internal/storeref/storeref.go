// Package storeref decides how coupons and jobs attach to stores: by
// reference to a registered store, by an embedded snapshot, or by creating
// the store on the fly.
package storeref

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyStoreName = errors.New("storeName is required")
	ErrStoreNotFound  = errors.New("Store not found")
)

// MissingFieldsError lists the fields a new store could not be built without.
type MissingFieldsError struct {
	Required []string
	Missing  []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("New store requires %s (missing: %s)", joinFields(e.Required), strings.Join(e.Missing, ", "))
}

// InvalidValueError reports a store field that is present but unusable.
type InvalidValueError struct {
	Field string
	Err   error
}

func (e *InvalidValueError) Error() string { return e.Err.Error() }
func (e *InvalidValueError) Unwrap() error { return e.Err }

// IsClientError reports whether err came from bad caller input rather than
// from the store repository.
func IsClientError(err error) bool {
	var missing *MissingFieldsError
	var invalid *InvalidValueError
	return errors.Is(err, ErrEmptyStoreName) ||
		errors.Is(err, ErrStoreNotFound) ||
		errors.As(err, &missing) ||
		errors.As(err, &invalid)
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
}

type Kind int

const (
	FreeText Kind = iota
	Reference
)

func (k Kind) String() string {
	if k == Reference {
		return "reference"
	}
	return "free-text"
}

type Candidate struct {
	Kind  Kind
	Value string
}

// Classify treats a 24 character hex string as a store reference and any
// other non-empty string as the free-text name of an unregistered store.
func Classify(candidate string) (Candidate, error) {
	v := strings.TrimSpace(candidate)
	if v == "" {
		return Candidate{}, ErrEmptyStoreName
	}
	if primitive.IsValidObjectID(v) {
		return Candidate{Kind: Reference, Value: strings.ToLower(v)}, nil
	}
	return Candidate{Kind: FreeText, Value: v}, nil
}

// IsReference reports whether s is shaped like a store id.
func IsReference(s string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(s))
}

// Stores is the slice of the store repository the resolver needs.
type Stores interface {
	FindByID(ctx context.Context, id string) (*model.Store, error)
	Create(ctx context.Context, store *model.Store) error
}

// Summaries looks up the store summaries embedded in read responses.
type Summaries interface {
	FindSummaries(ctx context.Context, ids []string) (map[string]*model.StoreSummary, error)
}

type Resolver struct {
	stores Stores
}

func NewResolver(stores Stores) *Resolver {
	return &Resolver{stores: stores}
}

func (r *Resolver) Resolve(ctx context.Context, ref Candidate) (*model.Store, error) {
	if ref.Kind != Reference {
		return nil, ErrStoreNotFound
	}
	store, err := r.stores.FindByID(ctx, ref.Value)
	if err != nil {
		return nil, fmt.Errorf("resolve store %s: %w", ref.Value, err)
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// BindCoupon turns the caller's storeName plus optional free-text fields into
// a coupon binding. A reference must resolve; free text must come with
// category, location and plan.
func (r *Resolver) BindCoupon(ctx context.Context, storeName, category string, location model.Location, plan string) (model.StoreBinding, error) {
	cand, err := Classify(storeName)
	if err != nil {
		return nil, &MissingFieldsError{
			Required: append([]string{"storeName"}, snapshotFields...),
			Missing:  []string{"storeName"},
		}
	}
	if cand.Kind == Reference {
		store, err := r.Resolve(ctx, cand)
		if err != nil {
			return nil, err
		}
		return ReferenceTo(store), nil
	}
	return BuildSnapshot(cand.Value, category, location, plan)
}

// ReferenceTo copies the store attributes a coupon keeps alongside the id.
func ReferenceTo(store *model.Store) model.StoreReference {
	return model.StoreReference{
		StoreID: store.ID,
		StoreAttributes: model.StoreAttributes{
			Category: store.Category,
			Location: store.Location.WithoutMapLink(),
			Plan:     store.Plan,
		},
	}
}

var snapshotFields = []string{"category", "location", "plan"}

// BuildSnapshot validates free-text store fields. Every missing field is
// reported at once; an unknown plan is reported after presence checks pass.
func BuildSnapshot(name, category string, location model.Location, plan string) (model.StoreSnapshot, error) {
	var missing []string
	if strings.TrimSpace(category) == "" {
		missing = append(missing, "category")
	}
	if location.IsEmpty() {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(plan) == "" {
		missing = append(missing, "plan")
	}
	if len(missing) > 0 {
		return model.StoreSnapshot{}, &MissingFieldsError{Required: snapshotFields, Missing: missing}
	}
	p, err := model.ParsePlan(plan)
	if err != nil {
		return model.StoreSnapshot{}, &InvalidValueError{Field: "plan", Err: err}
	}
	if !location.ValidPincode() {
		return model.StoreSnapshot{}, &InvalidValueError{Field: "location", Err: errInvalidPincode(location)}
	}
	return model.StoreSnapshot{
		StoreName: strings.TrimSpace(name),
		StoreAttributes: model.StoreAttributes{
			Category: strings.TrimSpace(category),
			Location: location.WithoutMapLink(),
			Plan:     p,
		},
	}, nil
}

const (
	DefaultCategory = "General"
)

// NewStoreFields are what a job caller supplies for a store that does not exist yet.
type NewStoreFields struct {
	Location    model.Location
	Logo        string
	PhoneNumber string
}

func errInvalidPincode(loc model.Location) error {
	return fmt.Errorf("invalid pincode %q: must be 6 digits", loc.Pincode)
}

var newStoreFields = []string{"location", "logo", "phoneNumber"}

func (f NewStoreFields) missing() []string {
	var missing []string
	if f.Location.IsEmpty() {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(f.Logo) == "" {
		missing = append(missing, "logo")
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		missing = append(missing, "phoneNumber")
	}
	return missing
}

// EnsureStore resolves candidate to a registered store, creating one from
// fields when candidate is free text or a reference nobody owns. The second
// return value reports whether a store was created.
func (r *Resolver) EnsureStore(ctx context.Context, candidate string, fields NewStoreFields) (*model.Store, bool, error) {
	cand, err := Classify(candidate)
	if err != nil {
		return nil, false, err
	}
	if cand.Kind == Reference {
		store, err := r.Resolve(ctx, cand)
		if err == nil {
			return store, false, nil
		}
		if !errors.Is(err, ErrStoreNotFound) {
			return nil, false, err
		}
	}

	if missing := fields.missing(); len(missing) > 0 {
		return nil, false, &MissingFieldsError{Required: newStoreFields, Missing: missing}
	}
	if !fields.Location.ValidPincode() {
		return nil, false, &InvalidValueError{Field: "location", Err: errInvalidPincode(fields.Location)}
	}

	store := &model.Store{
		StoreName:   cand.Value,
		Category:    DefaultCategory,
		Plan:        model.DefaultPlan,
		Location:    fields.Location,
		LogoImage:   strings.TrimSpace(fields.Logo),
		PhoneNumber: strings.TrimSpace(fields.PhoneNumber),
	}
	store.Touch(time.Now())
	if err := r.stores.Create(ctx, store); err != nil {
		return nil, false, fmt.Errorf("create store %q: %w", cand.Value, err)
	}
	return store, true, nil
}

// JobFields are the job-owned fields, independent of the store it belongs to.
type JobFields struct {
	JobName         string
	Title           string
	Salary          string
	Qualification   string
	Description     string
	Mode            model.JobMode
	Skills          []string
	ApplicationLink string
}

// AssembleJob builds a job bound to store. It performs no I/O.
func AssembleJob(store *model.Store, fields JobFields) *model.Job {
	job := &model.Job{
		JobName:         fields.JobName,
		Title:           fields.Title,
		Salary:          fields.Salary,
		Qualification:   fields.Qualification,
		Description:     fields.Description,
		Mode:            fields.Mode,
		Skills:          fields.Skills,
		ApplicationLink: fields.ApplicationLink,
	}
	BindJob(job, store)
	return job
}

// BindJob points job at store and copies the store's contact details.
func BindJob(job *model.Job, store *model.Store) {
	job.StoreID = store.ID
	job.Location = store.Location.WithoutMapLink()
	job.Logo = store.LogoImage
	job.PhoneNumber = store.PhoneNumber
}
