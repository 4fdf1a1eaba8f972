package api

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/api/middleware"
	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resource is a handler that mounts its routes under a prefix.
type Resource interface {
	Routes(r chi.Router)
}

type Handlers struct {
	Stores    Resource
	Coupons   Resource
	Jobs      Resource
	Ads       Resource
	Enquiries Resource
	Users     Resource
}

type Options struct {
	// UploadsDir is served under /uploads when non-empty.
	UploadsDir string
	Registry   *prometheus.Registry
}

// NewRouter builds the HTTP router for the directory service.
func NewRouter(h Handlers, opts Options, log logger.ZapLogger) http.Handler {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Handler)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, "Route not found")
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/stores", h.Stores.Routes)
		r.Route("/coupons", h.Coupons.Routes)
		r.Route("/jobs", h.Jobs.Routes)
		r.Route("/ads", h.Ads.Routes)
		r.Route("/enquiries", h.Enquiries.Routes)
		r.Route("/users", h.Users.Routes)
	})

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}
