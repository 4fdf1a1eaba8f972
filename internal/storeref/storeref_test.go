package storeref

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type fakeStores struct {
	byID    map[string]*model.Store
	created []*model.Store
	findErr error
}

func newFakeStores(stores ...*model.Store) *fakeStores {
	f := &fakeStores{byID: map[string]*model.Store{}}
	for _, s := range stores {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeStores) FindByID(_ context.Context, id string) (*model.Store, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byID[id], nil
}

func (f *fakeStores) Create(_ context.Context, s *model.Store) error {
	f.byID[s.ID] = s
	f.created = append(f.created, s)
	return nil
}

const foodStoreID = "64b7f0c2a1b2c3d4e5f60718"

func foodStore() *model.Store {
	return &model.Store{
		BaseModel:   model.BaseModel{ID: foodStoreID},
		StoreName:   "Food Hub",
		Category:    "Food",
		Plan:        model.PlanGold,
		Location:    model.Location{District: "A", City: "B", Pincode: "600001", MapLink: "https://maps.example/x"},
		LogoImage:   "/uploads/stores/logoImage-1.png",
		PhoneNumber: "9876543210",
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{foodStoreID, Reference},
		{"64B7F0C2A1B2C3D4E5F60718", Reference},
		{"New Cafe", FreeText},
		{"64b7f0c2a1b2c3d4e5f6071", FreeText},
		{"zzb7f0c2a1b2c3d4e5f60718", FreeText},
	}
	for _, tc := range cases {
		got, err := Classify(tc.in)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", tc.in, err)
		}
		if got.Kind != tc.kind {
			t.Fatalf("Classify(%q) = %s, want %s", tc.in, got.Kind, tc.kind)
		}
	}
	if _, err := Classify("   "); !errors.Is(err, ErrEmptyStoreName) {
		t.Fatalf("Classify(blank) err = %v, want ErrEmptyStoreName", err)
	}
}

func TestBindCouponReferenceCopiesAttributes(t *testing.T) {
	r := NewResolver(newFakeStores(foodStore()))

	b, err := r.BindCoupon(context.Background(), foodStoreID, "", model.Location{}, "")
	if err != nil {
		t.Fatalf("BindCoupon error: %v", err)
	}
	ref, ok := b.(model.StoreReference)
	if !ok {
		t.Fatalf("binding = %T, want StoreReference", b)
	}
	if ref.StoreID != foodStoreID {
		t.Fatalf("StoreID = %q, want %q", ref.StoreID, foodStoreID)
	}
	if ref.Category != "Food" || ref.Plan != model.PlanGold {
		t.Fatalf("attributes = %+v, want Food/gold", ref.StoreAttributes)
	}
	if ref.Location.Pincode != "600001" || ref.Location.MapLink != "" {
		t.Fatalf("location = %+v, want pincode copied and map link dropped", ref.Location)
	}
}

func TestBindCouponUnknownReference(t *testing.T) {
	r := NewResolver(newFakeStores())
	_, err := r.BindCoupon(context.Background(), foodStoreID, "Food", model.Location{City: "B"}, "gold")
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("err = %v, want ErrStoreNotFound", err)
	}
	if !IsClientError(err) {
		t.Fatal("store not found should be a client error")
	}
}

func TestBindCouponSnapshot(t *testing.T) {
	r := NewResolver(newFakeStores())
	loc := model.Location{District: "A", City: "B", Pincode: "600001"}

	b, err := r.BindCoupon(context.Background(), "New Cafe", "Food", loc, "Diamond")
	if err != nil {
		t.Fatalf("BindCoupon error: %v", err)
	}
	snap, ok := b.(model.StoreSnapshot)
	if !ok {
		t.Fatalf("binding = %T, want StoreSnapshot", b)
	}
	if snap.StoreName != "New Cafe" {
		t.Fatalf("StoreName = %q, want New Cafe", snap.StoreName)
	}
	if snap.Plan != model.PlanDiamond {
		t.Fatalf("Plan = %q, want diamond", snap.Plan)
	}
}

func TestBuildSnapshotMissingFields(t *testing.T) {
	_, err := BuildSnapshot("New Cafe", "", model.Location{}, "gold")
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingFieldsError", err)
	}
	if strings.Join(missing.Missing, ",") != "category,location" {
		t.Fatalf("missing = %v, want [category location]", missing.Missing)
	}
	if !strings.Contains(err.Error(), "category") {
		t.Fatalf("message %q does not mention category", err.Error())
	}
}

func TestBuildSnapshotRejectsUnknownPlanAndPincode(t *testing.T) {
	loc := model.Location{City: "B"}
	if _, err := BuildSnapshot("X", "Food", loc, "silver"); !IsClientError(err) {
		t.Fatalf("unknown plan err = %v, want client error", err)
	}
	loc.Pincode = "12"
	if _, err := BuildSnapshot("X", "Food", loc, "gold"); !IsClientError(err) {
		t.Fatalf("bad pincode err = %v, want client error", err)
	}
}

func TestEnsureStoreResolvesExisting(t *testing.T) {
	stores := newFakeStores(foodStore())
	r := NewResolver(stores)

	got, created, err := r.EnsureStore(context.Background(), foodStoreID, NewStoreFields{})
	if err != nil {
		t.Fatalf("EnsureStore error: %v", err)
	}
	if created || got.ID != foodStoreID {
		t.Fatalf("got (%s, created=%v), want existing store", got.ID, created)
	}
	if len(stores.created) != 0 {
		t.Fatal("no store should have been created")
	}
}

func TestEnsureStoreCreatesWithDefaults(t *testing.T) {
	stores := newFakeStores()
	r := NewResolver(stores)
	fields := NewStoreFields{
		Location:    model.Location{City: "Chennai", Pincode: "600001"},
		Logo:        "https://cdn.example/logo.png",
		PhoneNumber: "9876543210",
	}

	got, created, err := r.EnsureStore(context.Background(), "Corner Bakery", fields)
	if err != nil {
		t.Fatalf("EnsureStore error: %v", err)
	}
	if !created {
		t.Fatal("created = false, want true")
	}
	if got.Category != DefaultCategory || got.Plan != model.PlanGold {
		t.Fatalf("defaults = %q/%q, want General/gold", got.Category, got.Plan)
	}
	if len(got.ID) != 24 {
		t.Fatalf("new store id %q is not an object id", got.ID)
	}
	if len(stores.created) != 1 {
		t.Fatalf("created %d stores, want 1", len(stores.created))
	}
}

func TestEnsureStoreUnresolvedReferenceFallsThrough(t *testing.T) {
	stores := newFakeStores()
	r := NewResolver(stores)
	fields := NewStoreFields{Location: model.Location{City: "B"}, Logo: "l.png", PhoneNumber: "1"}

	_, created, err := r.EnsureStore(context.Background(), foodStoreID, fields)
	if err != nil {
		t.Fatalf("EnsureStore error: %v", err)
	}
	if !created {
		t.Fatal("unresolved reference should create a store")
	}
}

func TestEnsureStoreRequiresContactFields(t *testing.T) {
	r := NewResolver(newFakeStores())
	_, _, err := r.EnsureStore(context.Background(), "Corner Bakery", NewStoreFields{Logo: "l.png"})
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingFieldsError", err)
	}
	if strings.Join(missing.Missing, ",") != "location,phoneNumber" {
		t.Fatalf("missing = %v", missing.Missing)
	}
}

func TestEnsureStorePropagatesRepositoryErrors(t *testing.T) {
	stores := newFakeStores()
	stores.findErr = errors.New("connection refused")
	r := NewResolver(stores)

	_, _, err := r.EnsureStore(context.Background(), foodStoreID, NewStoreFields{})
	if err == nil || IsClientError(err) {
		t.Fatalf("err = %v, want repository error", err)
	}
}

func TestAssembleJobCopiesStoreContact(t *testing.T) {
	job := AssembleJob(foodStore(), JobFields{JobName: "Barista", Title: "Morning shift", Mode: model.JobModeOnsite})
	if job.StoreID != foodStoreID {
		t.Fatalf("StoreID = %q, want %q", job.StoreID, foodStoreID)
	}
	if job.Logo != "/uploads/stores/logoImage-1.png" || job.PhoneNumber != "9876543210" {
		t.Fatalf("contact = %q/%q, want store logo and phone", job.Logo, job.PhoneNumber)
	}
	if job.Location.City != "B" {
		t.Fatalf("location = %+v, want store location", job.Location)
	}
}
