package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/advertisement"
	"github.com/fekuna/omnipos-directory-service/internal/advertisement/dto"
	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AdHandler struct {
	uc       advertisement.UseCase
	uploads  *attachment.Collector
	maxBytes int64
	logger   logger.ZapLogger
}

func NewAdHandler(uc advertisement.UseCase, uploads *attachment.Collector, maxBytes int64, log logger.ZapLogger) *AdHandler {
	return &AdHandler{
		uc:       uc,
		uploads:  uploads,
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (h *AdHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateAdvertisement)
	r.Get("/", h.ListAdvertisements)
	r.Get("/{id}", h.GetAdvertisement)
	r.Put("/{id}", h.UpdateAdvertisement)
	r.Delete("/{id}", h.DeleteAdvertisement)
}

func (h *AdHandler) CreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	input, err := h.parse(w, r)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	ad, err := h.uc.CreateAdvertisement(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, "Advertisement created successfully", "ad", ad)
}

func (h *AdHandler) ListAdvertisements(w http.ResponseWriter, r *http.Request) {
	ads, err := h.uc.ListAdvertisements(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ads)
}

func (h *AdHandler) GetAdvertisement(w http.ResponseWriter, r *http.Request) {
	ad, err := h.uc.GetAdvertisement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ad)
}

func (h *AdHandler) UpdateAdvertisement(w http.ResponseWriter, r *http.Request) {
	input, err := h.parse(w, r)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	ad, err := h.uc.UpdateAdvertisement(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, "Advertisement updated successfully", "ad", ad)
}

func (h *AdHandler) DeleteAdvertisement(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAdvertisement(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Advertisement deleted successfully")
}

// parse reads the category, the JSON-encoded sub-objects and, once those are
// valid, the uploaded images.
func (h *AdHandler) parse(w http.ResponseWriter, r *http.Request) (*dto.AdInput, error) {
	form, err := httpx.ParseForm(w, r, h.maxBytes)
	if err != nil {
		return nil, err
	}

	input := &dto.AdInput{Category: form.Get("category")}
	var (
		hero   model.HeroAd
		strap  model.ImageAd
		coupon model.ImageAd
		slider model.SliderAd
		logo   model.ImageAd
	)
	for _, f := range []struct {
		key string
		dst any
		set func()
	}{
		{"hero", &hero, func() { input.Hero = &hero }},
		{"strap", &strap, func() { input.Strap = &strap }},
		{"coupon", &coupon, func() { input.Coupon = &coupon }},
		{"slider", &slider, func() { input.Slider = &slider }},
		{"logo", &logo, func() { input.Logo = &logo }},
	} {
		ok, err := form.JSON(f.key, f.dst)
		if err != nil {
			return nil, apperror.Validation("Invalid JSON format in " + f.key)
		}
		if ok {
			f.set()
		}
	}

	if input.Files, err = h.uploads.Collect(r.Context(), form.Multipart); err != nil {
		return nil, err
	}
	return input, nil
}
