package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/job/dto"
	"github.com/fekuna/omnipos-directory-service/internal/job/jobtest"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/store/storetest"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
)

const storeID = "64b7f0c2a1b2c3d4e5f60718"

func foodStore() *model.Store {
	return &model.Store{
		BaseModel:   model.BaseModel{ID: storeID},
		StoreName:   "Food Hub",
		Category:    "Food",
		Plan:        model.PlanDiamond,
		Location:    model.Location{District: "A", City: "B", Pincode: "600001", MapLink: "https://maps.example/x"},
		LogoImage:   "/uploads/stores/logo.png",
		PhoneNumber: "9876543210",
	}
}

func newUseCase(stores *storetest.Memory, jobs *jobtest.Memory) *jobUseCase {
	log := logger.NewNop()
	return NewJobUseCase(jobs, storeref.NewResolver(stores), stores, event.NewEmitter(event.Noop{}, log), log).(*jobUseCase)
}

func TestCreateJobForExistingStore(t *testing.T) {
	stores := storetest.NewMemory(foodStore())
	uc := newUseCase(stores, jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{
		JobName:   "Barista",
		Title:     "Morning barista",
		Skills:    []string{" coffee ", "", "service"},
		StoreName: storeID,
		Logo:      "/ignored.png",
	})
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if j.StoreID != storeID || j.Logo != "/uploads/stores/logo.png" || j.PhoneNumber != "9876543210" {
		t.Fatalf("job = %+v, want store details copied", j)
	}
	if j.Location.MapLink != "" || j.Location.City != "B" {
		t.Fatalf("location = %+v", j.Location)
	}
	if j.Mode != model.JobModeOnsite {
		t.Fatalf("Mode = %q, want onsite default", j.Mode)
	}
	if len(j.Skills) != 2 || j.Skills[0] != "coffee" {
		t.Fatalf("Skills = %v", j.Skills)
	}
	if j.Store == nil || j.Store.Plan != model.PlanDiamond {
		t.Fatalf("store summary = %+v", j.Store)
	}
	if stores.Len() != 1 {
		t.Fatalf("stores = %d, want no new store", stores.Len())
	}
}

func TestCreateJobCreatesMissingStore(t *testing.T) {
	stores := storetest.NewMemory()
	uc := newUseCase(stores, jobtest.NewMemory())

	for _, name := range []string{"Pop Up Stall", storeID} {
		j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{
			JobName:     "Cook",
			Title:       "Line cook",
			StoreName:   name,
			Location:    model.Location{City: "C", Pincode: "600002"},
			Logo:        "/uploads/logo.png",
			PhoneNumber: "9000000000",
		})
		if err != nil {
			t.Fatalf("%q: CreateJob error: %v", name, err)
		}
		s, _ := stores.FindByID(context.Background(), j.StoreID)
		if s == nil {
			t.Fatalf("%q: job points at %q which was not stored", name, j.StoreID)
		}
		if s.Category != storeref.DefaultCategory || s.Plan != model.PlanGold || s.StoreName != name {
			t.Fatalf("%q: created store = %+v", name, s)
		}
		if j.Logo != "/uploads/logo.png" || j.PhoneNumber != "9000000000" {
			t.Fatalf("%q: job = %+v", name, j)
		}
	}
	if stores.Len() != 2 {
		t.Fatalf("stores = %d, want 2", stores.Len())
	}
}

func TestCreateJobNewStoreMissingFields(t *testing.T) {
	stores := storetest.NewMemory()
	uc := newUseCase(stores, jobtest.NewMemory())

	_, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{
		JobName:   "Cook",
		Title:     "Line cook",
		StoreName: "Pop Up Stall",
		Logo:      "/uploads/logo.png",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if !strings.HasPrefix(err.Error(), "New store requires location, logo, and phoneNumber") {
		t.Fatalf("message = %q", err.Error())
	}
	if stores.Len() != 0 {
		t.Fatal("store created despite missing fields")
	}
}

func TestCreateJobValidation(t *testing.T) {
	uc := newUseCase(storetest.NewMemory(foodStore()), jobtest.NewMemory())
	cases := map[string]*dto.CreateJobInput{
		"no store": {JobName: "A", Title: "B"},
		"no title": {JobName: "A", StoreName: storeID},
		"bad mode": {JobName: "A", Title: "B", StoreName: storeID, Mode: "space"},
		"no name":  {Title: "B", StoreName: storeID},
	}
	for name, in := range cases {
		if _, err := uc.CreateJob(context.Background(), in); !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestCreateJobStoreLookupFailureIsInternal(t *testing.T) {
	stores := storetest.NewMemory()
	stores.Err = errors.New("connection refused")
	uc := newUseCase(stores, jobtest.NewMemory())

	_, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "A", Title: "B", StoreName: storeID})
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("err = %v, want internal", err)
	}
}

func TestUpdateJobPartialKeepsUnsentFields(t *testing.T) {
	uc := newUseCase(storetest.NewMemory(foodStore()), jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "Barista", Title: "Morning", Salary: "20k", StoreName: storeID})
	if err != nil {
		t.Fatal(err)
	}
	mode := "Remote"
	updated, err := uc.UpdateJob(context.Background(), &dto.UpdateJobInput{ID: j.ID, Mode: &mode})
	if err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}
	if updated.Mode != model.JobModeRemote || updated.Salary != "20k" || updated.StoreID != storeID {
		t.Fatalf("job = %+v", updated)
	}

	empty := " "
	if _, err := uc.UpdateJob(context.Background(), &dto.UpdateJobInput{ID: j.ID, Title: &empty}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("blank title: err = %v, want validation", err)
	}
}

func TestUpdateJobRetargetsStore(t *testing.T) {
	stores := storetest.NewMemory(foodStore())
	uc := newUseCase(stores, jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "Barista", Title: "Morning", StoreName: storeID})
	if err != nil {
		t.Fatal(err)
	}
	name := "Night Market"
	loc := model.Location{City: "D"}
	logo := "/uploads/night.png"
	phone := "9111111111"
	updated, err := uc.UpdateJob(context.Background(), &dto.UpdateJobInput{
		ID: j.ID, StoreName: &name, Location: &loc, Logo: &logo, PhoneNumber: &phone,
	})
	if err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}
	if updated.StoreID == storeID || updated.Logo != logo || updated.Location.City != "D" {
		t.Fatalf("job = %+v, want re-targeted", updated)
	}
	if stores.Len() != 2 {
		t.Fatalf("stores = %d, want 2", stores.Len())
	}
}

func TestJobReadsTolerateDeletedStore(t *testing.T) {
	stores := storetest.NewMemory(foodStore())
	uc := newUseCase(stores, jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "Barista", Title: "Morning", StoreName: storeID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := stores.Delete(context.Background(), storeID); err != nil {
		t.Fatal(err)
	}

	got, err := uc.GetJob(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("GetJob error: %v", err)
	}
	if got.Store != nil || got.StoreID != storeID {
		t.Fatalf("job = %+v, want dangling id and nil summary", got)
	}
	jobs, err := uc.ListJobs(context.Background())
	if err != nil || len(jobs) != 1 || jobs[0].Store != nil {
		t.Fatalf("ListJobs = %+v, %v", jobs, err)
	}
	if err := uc.DeleteJob(context.Background(), j.ID); err != nil {
		t.Fatalf("DeleteJob with deleted store: %v", err)
	}
}

func TestDeleteJobNotFound(t *testing.T) {
	uc := newUseCase(storetest.NewMemory(), jobtest.NewMemory())
	for _, id := range []string{storeID, "123"} {
		if err := uc.DeleteJob(context.Background(), id); !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("id %q: err = %v, want not found", id, err)
		}
	}
}

func TestUpdateJobRejectedBeforeStoreCreation(t *testing.T) {
	stores := storetest.NewMemory(foodStore())
	uc := newUseCase(stores, jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "Barista", Title: "Morning", StoreName: storeID})
	if err != nil {
		t.Fatal(err)
	}

	name := "Brand New Cafe"
	loc := model.Location{City: "D", Pincode: "600003"}
	logo := "/uploads/new.png"
	phone := "9222222222"
	badMode := "freelance"
	blank := ""
	cases := map[string]*dto.UpdateJobInput{
		"bad mode":    {ID: j.ID, StoreName: &name, Location: &loc, Logo: &logo, PhoneNumber: &phone, Mode: &badMode},
		"blank title": {ID: j.ID, StoreName: &name, Location: &loc, Logo: &logo, PhoneNumber: &phone, Title: &blank},
	}
	for label, in := range cases {
		if _, err := uc.UpdateJob(context.Background(), in); !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("%s: err = %v, want validation", label, err)
		}
		if stores.Len() != 1 {
			t.Fatalf("%s: stores = %d after a rejected update, want 1", label, stores.Len())
		}
	}

	got, err := uc.GetJob(context.Background(), j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.StoreID != storeID || got.Mode != model.JobModeOnsite || got.Title != "Morning" {
		t.Fatalf("job = %+v, want unchanged", got)
	}
}

func TestUpdateJobReturnsStoreSummary(t *testing.T) {
	uc := newUseCase(storetest.NewMemory(foodStore()), jobtest.NewMemory())

	j, err := uc.CreateJob(context.Background(), &dto.CreateJobInput{JobName: "Barista", Title: "Morning", StoreName: storeID})
	if err != nil {
		t.Fatal(err)
	}
	salary := "25k"
	updated, err := uc.UpdateJob(context.Background(), &dto.UpdateJobInput{ID: j.ID, Salary: &salary})
	if err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}
	if updated.Store == nil || updated.Store.Plan != model.PlanDiamond {
		t.Fatalf("store summary = %+v, want populated", updated.Store)
	}
}
