package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type stubResource struct{ name string }

func (s stubResource) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusOK, s.name)
	})
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusOK, s.name+":"+chi.URLParam(r, "id"))
	})
}

func newServer(t *testing.T, uploads string) *httptest.Server {
	t.Helper()
	h := Handlers{
		Stores:    stubResource{"stores"},
		Coupons:   stubResource{"coupons"},
		Jobs:      stubResource{"jobs"},
		Ads:       stubResource{"ads"},
		Enquiries: stubResource{"enquiries"},
		Users:     stubResource{"users"},
	}
	srv := httptest.NewServer(NewRouter(h, Options{UploadsDir: uploads, Registry: prometheus.NewRegistry()}, logger.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestRoutesAreMountedUnderAPI(t *testing.T) {
	srv := newServer(t, "")
	for _, prefix := range []string{"stores", "coupons", "jobs", "ads", "enquiries", "users"} {
		status, body := get(t, srv.URL+"/api/"+prefix+"/abc")
		if status != http.StatusOK || !strings.Contains(body, prefix+":abc") {
			t.Fatalf("%s: %d %s", prefix, status, body)
		}
	}
}

func TestHealthAndNotFound(t *testing.T) {
	srv := newServer(t, "")

	status, body := get(t, srv.URL+"/health")
	if status != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("health = %d %s", status, body)
	}
	status, body = get(t, srv.URL+"/api/nothing")
	if status != http.StatusNotFound || !strings.Contains(body, "Route not found") {
		t.Fatalf("unknown route = %d %s", status, body)
	}
	if status, _ := get(t, srv.URL+"/uploads/a.png"); status != http.StatusNotFound {
		t.Fatalf("uploads without a directory = %d, want 404", status)
	}
}

func TestMetricsUseRoutePatterns(t *testing.T) {
	srv := newServer(t, "")
	get(t, srv.URL+"/api/jobs/one")
	get(t, srv.URL+"/api/jobs/two")

	status, body := get(t, srv.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("metrics status = %d", status)
	}
	want := `directory_http_requests_total{method="GET",route="/api/jobs/{id}",status="200"} 2`
	if !strings.Contains(body, want) {
		t.Fatalf("metrics missing %q:\n%s", want, body)
	}
}

func TestUploadsServedFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "stores"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stores", "logo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newServer(t, dir)

	status, body := get(t, srv.URL+"/uploads/stores/logo.png")
	if status != http.StatusOK || body != "png" {
		t.Fatalf("upload = %d %q", status, body)
	}
}
