package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/internal/job"
	"github.com/fekuna/omnipos-directory-service/internal/job/dto"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type JobHandler struct {
	uc     job.UseCase
	logger logger.ZapLogger
}

func NewJobHandler(uc job.UseCase, log logger.ZapLogger) *JobHandler {
	return &JobHandler{uc: uc, logger: log}
}

func (h *JobHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateJob)
	r.Get("/", h.ListJobs)
	r.Get("/{id}", h.GetJob)
	r.Put("/{id}", h.UpdateJob)
	r.Delete("/{id}", h.DeleteJob)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateJobInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	j, err := h.uc.CreateJob(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, "Job created successfully", "job", j)
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.uc.ListJobs(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.uc.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, j)
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateJobInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	j, err := h.uc.UpdateJob(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, "Job updated successfully", "job", j)
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Job deleted successfully")
}
