package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/user/usecase"
	"github.com/fekuna/omnipos-directory-service/internal/user/usertest"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewNop()
	uc := usecase.NewUserUseCase(usertest.NewMemory(), event.NewEmitter(event.Noop{}, log), log)

	r := chi.NewRouter()
	r.Route("/api/users", NewUserHandler(uc, log).Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
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

const ravi = `{"name":"Ravi","email":"ravi@example.com","phoneNumber":"9000000001","gender":"male","age":"31"}`

func TestRegisterAndCheckEmail(t *testing.T) {
	srv := newServer(t)

	status, body := send(t, http.MethodPost, srv.URL+"/api/users", ravi)
	if status != http.StatusCreated || body["message"] != "User registered" {
		t.Fatalf("register = %d %v", status, body)
	}
	if u := body["user"].(map[string]any); u["role"] != "user" || u["age"] != float64(31) {
		t.Fatalf("user = %v", u)
	}

	status, body = send(t, http.MethodPost, srv.URL+"/api/users", ravi)
	if status != http.StatusBadRequest || body["message"] != "Email already exists" {
		t.Fatalf("duplicate = %d %v", status, body)
	}

	status, body = send(t, http.MethodGet, srv.URL+"/api/users/check-email?email=ravi@example.com", "")
	if status != http.StatusOK || body["exists"] != true {
		t.Fatalf("check-email = %d %v", status, body)
	}
	status, body = send(t, http.MethodGet, srv.URL+"/api/users/check-email", "")
	if status != http.StatusBadRequest || body["message"] != "Email is required" {
		t.Fatalf("check-email without email = %d %v", status, body)
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	srv := newServer(t)

	_, body := send(t, http.MethodPost, srv.URL+"/api/users", ravi)
	id := body["user"].(map[string]any)["_id"].(string)

	status, body := send(t, http.MethodPut, srv.URL+"/api/users/"+id, `{"address":"12 Lake Road"}`)
	if status != http.StatusOK || body["message"] != "User updated" {
		t.Fatalf("update = %d %v", status, body)
	}
	if u := body["user"].(map[string]any); u["name"] != "Ravi" || u["address"] != "12 Lake Road" {
		t.Fatalf("user = %v", u)
	}

	status, body = send(t, http.MethodDelete, srv.URL+"/api/users/"+id, "")
	if status != http.StatusOK || body["message"] != "User deleted successfully" {
		t.Fatalf("delete = %d %v", status, body)
	}
	status, body = send(t, http.MethodGet, srv.URL+"/api/users/"+id, "")
	if status != http.StatusNotFound || body["message"] != "User not found" {
		t.Fatalf("get after delete = %d %v", status, body)
	}
}
