package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/enquiry"
	"github.com/fekuna/omnipos-directory-service/internal/enquiry/dto"
	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type EnquiryHandler struct {
	uc     enquiry.UseCase
	logger logger.ZapLogger
}

func NewEnquiryHandler(uc enquiry.UseCase, log logger.ZapLogger) *EnquiryHandler {
	return &EnquiryHandler{uc: uc, logger: log}
}

func (h *EnquiryHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateEnquiry)
	r.Get("/", h.ListEnquiries)
	r.Get("/{id}", h.GetEnquiry)
	r.Put("/{id}", h.UpdateEnquiry)
	r.Delete("/{id}", h.DeleteEnquiry)
}

func (h *EnquiryHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateEnquiryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	e, err := h.uc.CreateEnquiry(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, "Enquiry submitted successfully", "enquiry", e)
}

func (h *EnquiryHandler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.uc.ListEnquiries(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, enquiries)
}

func (h *EnquiryHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	e, err := h.uc.GetEnquiry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EnquiryHandler) UpdateEnquiry(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateEnquiryInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	e, err := h.uc.UpdateEnquiry(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, "Enquiry updated successfully", "enquiry", e)
}

func (h *EnquiryHandler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteEnquiry(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Enquiry deleted successfully")
}
