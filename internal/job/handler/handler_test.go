package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/job/jobtest"
	"github.com/fekuna/omnipos-directory-service/internal/job/usecase"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/store/storetest"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const storeID = "64b7f0c2a1b2c3d4e5f60718"

func newServer(t *testing.T) (*httptest.Server, *storetest.Memory) {
	t.Helper()
	log := logger.NewNop()
	stores := storetest.NewMemory(&model.Store{
		BaseModel:   model.BaseModel{ID: storeID},
		StoreName:   "Food Hub",
		Category:    "Food",
		Plan:        model.PlanGold,
		Location:    model.Location{City: "B", Pincode: "600001"},
		LogoImage:   "/uploads/stores/logo.png",
		PhoneNumber: "9876543210",
	})
	uc := usecase.NewJobUseCase(jobtest.NewMemory(), storeref.NewResolver(stores), stores, event.NewEmitter(event.Noop{}, log), log)

	r := chi.NewRouter()
	r.Route("/api/jobs", NewJobHandler(uc, log).Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, stores
}

func send(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func TestCreateJobWithExistingStore(t *testing.T) {
	srv, _ := newServer(t)

	status, body := send(t, http.MethodPost, srv.URL+"/api/jobs",
		`{"jobName":"Barista","title":"Morning","skills":["coffee"],"storeName":"`+storeID+`"}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	j := body["job"].(map[string]any)
	if j["storeName"] != storeID || j["logo"] != "/uploads/stores/logo.png" {
		t.Fatalf("job = %v", j)
	}
	store := j["store"].(map[string]any)
	if store["storeName"] != "Food Hub" {
		t.Fatalf("store = %v", store)
	}
}

func TestCreateJobCreatesStore(t *testing.T) {
	srv, stores := newServer(t)

	status, body := send(t, http.MethodPost, srv.URL+"/api/jobs",
		`{"jobName":"Cook","title":"Line","storeName":"Pop Up","location":{"city":"C"},"logo":"/l.png","phoneNumber":"9000000000"}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if stores.Len() != 2 {
		t.Fatalf("stores = %d, want 2", stores.Len())
	}
}

func TestCreateJobClientErrors(t *testing.T) {
	srv, _ := newServer(t)
	cases := map[string]string{
		"bad json":       `{"jobName":`,
		"missing fields": `{"jobName":"Cook","title":"Line","storeName":"Pop Up"}`,
		"empty store":    `{"jobName":"Cook","title":"Line"}`,
	}
	for name, payload := range cases {
		status, body := send(t, http.MethodPost, srv.URL+"/api/jobs", payload)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, status)
		}
		if msg, _ := body["message"].(string); msg == "" {
			t.Fatalf("%s: no message in %v", name, body)
		}
	}
	_, body := send(t, http.MethodPost, srv.URL+"/api/jobs", cases["missing fields"])
	if msg := body["message"].(string); !strings.Contains(msg, "location") {
		t.Fatalf("message = %q", msg)
	}
}

func TestUpdateAndDeleteJob(t *testing.T) {
	srv, _ := newServer(t)

	_, body := send(t, http.MethodPost, srv.URL+"/api/jobs",
		`{"jobName":"Barista","title":"Morning","storeName":"`+storeID+`"}`)
	id := body["job"].(map[string]any)["_id"].(string)

	status, body := send(t, http.MethodPut, srv.URL+"/api/jobs/"+id, `{"salary":"25k","mode":"hybrid"}`)
	if status != http.StatusOK || body["message"] != "Job updated successfully" {
		t.Fatalf("update = %d %v", status, body)
	}
	j := body["job"].(map[string]any)
	if j["salary"] != "25k" || j["mode"] != "hybrid" || j["title"] != "Morning" {
		t.Fatalf("job = %v", j)
	}

	status, body = send(t, http.MethodDelete, srv.URL+"/api/jobs/"+id, "")
	if status != http.StatusOK || body["message"] != "Job deleted successfully" {
		t.Fatalf("delete = %d %v", status, body)
	}
	status, body = send(t, http.MethodGet, srv.URL+"/api/jobs/"+id, "")
	if status != http.StatusNotFound || body["message"] != "Job not found" {
		t.Fatalf("get after delete = %d %v", status, body)
	}
}
