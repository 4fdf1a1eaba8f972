package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/coupon"
	"github.com/fekuna/omnipos-directory-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

var errInvalidJSON = apperror.Validation("Invalid JSON format in offerTitle or location")

type CouponHandler struct {
	uc       coupon.UseCase
	uploads  *attachment.Collector
	maxBytes int64
	logger   logger.ZapLogger
}

func NewCouponHandler(uc coupon.UseCase, uploads *attachment.Collector, maxBytes int64, log logger.ZapLogger) *CouponHandler {
	return &CouponHandler{
		uc:       uc,
		uploads:  uploads,
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (h *CouponHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateCoupon)
	r.Get("/", h.ListCoupons)
	r.Get("/{id}", h.GetCoupon)
	r.Put("/{id}", h.UpdateCoupon)
	r.Delete("/{id}", h.DeleteCoupon)
}

func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	form, err := httpx.ParseForm(w, r, h.maxBytes)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	input := &dto.CreateCouponInput{
		StoreName:         form.Get("storeName"),
		Category:          form.Get("category"),
		Plan:              form.Get("plan"),
		CouponCode:        form.Get("couponCode"),
		Description:       form.Get("description"),
		TermsAndCondition: form.Get("termsAndCondition"),
		ExpiredDate:       form.Get("expiredDate"),
		ShareLink:         form.Get("shareLink"),
	}
	if _, err := form.JSON("offerTitle", &input.OfferTitle); err != nil {
		httpx.WriteError(w, h.logger, errInvalidJSON)
		return
	}
	if _, err := form.JSON("location", &input.Location); err != nil {
		httpx.WriteError(w, h.logger, errInvalidJSON)
		return
	}

	// Uploads are stored only once the text fields parsed.
	if input.Files, err = h.uploads.Collect(r.Context(), form.Multipart); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	c, err := h.uc.CreateCoupon(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, "Coupon created successfully", "coupon", c)
}

func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.uc.ListCoupons(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coupons)
}

func (h *CouponHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	form, err := httpx.ParseForm(w, r, h.maxBytes)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	input := &dto.UpdateCouponInput{
		ID:                chi.URLParam(r, "id"),
		StoreName:         form.GetPtr("storeName"),
		Category:          form.GetPtr("category"),
		Plan:              form.GetPtr("plan"),
		CouponCode:        form.Get("couponCode"),
		Description:       form.GetPtr("description"),
		TermsAndCondition: form.GetPtr("termsAndCondition"),
		ExpiredDate:       form.GetPtr("expiredDate"),
		ShareLink:         form.GetPtr("shareLink"),
	}

	var offer model.OfferTitle
	ok, err := form.JSON("offerTitle", &offer)
	if err != nil {
		httpx.WriteError(w, h.logger, errInvalidJSON)
		return
	}
	if ok {
		input.OfferTitle = &offer
	}
	var location model.Location
	ok, err = form.JSON("location", &location)
	if err != nil {
		httpx.WriteError(w, h.logger, errInvalidJSON)
		return
	}
	if ok {
		input.Location = &location
	}

	if input.Files, err = h.uploads.Collect(r.Context(), form.Multipart); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	c, err := h.uc.UpdateCoupon(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, "Coupon updated successfully", "coupon", c)
}

func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCoupon(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Coupon deleted successfully")
}
