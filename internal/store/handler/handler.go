package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/httpx"
	"github.com/fekuna/omnipos-directory-service/internal/model"
	"github.com/fekuna/omnipos-directory-service/internal/store"
	"github.com/fekuna/omnipos-directory-service/internal/store/dto"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type StoreHandler struct {
	uc       store.UseCase
	uploads  *attachment.Collector
	maxBytes int64
	logger   logger.ZapLogger
}

func NewStoreHandler(uc store.UseCase, uploads *attachment.Collector, maxBytes int64, log logger.ZapLogger) *StoreHandler {
	return &StoreHandler{
		uc:       uc,
		uploads:  uploads,
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (h *StoreHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateStore)
	r.Get("/", h.ListStores)
	r.Get("/{id}", h.GetStore)
	r.Put("/{id}", h.UpdateStore)
	r.Delete("/{id}", h.DeleteStore)
	r.Delete("/{id}/services/{ref}", h.DeleteService)
	r.Delete("/{id}/products/{ref}", h.DeleteProduct)
}

func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	form, files, err := h.parse(w, r)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	input := &dto.CreateStoreInput{
		StoreName:   form.Get("storeName"),
		Category:    form.Get("category"),
		Description: form.Get("description"),
		Plan:        form.Get("plan"),
		Review:      form.Get("review"),
		AboutMe:     form.Get("aboutMe"),
		PhoneNumber: form.Get("phoneNumber"),
		WebsiteLink: form.Get("websiteLink"),
		Files:       files,
	}
	for _, f := range []struct {
		key string
		dst any
	}{
		{"location", &input.Location},
		{"socialMediaLinks", &input.SocialMediaLinks},
		{"services", &input.Services},
		{"products", &input.Products},
	} {
		if _, err := form.JSON(f.key, f.dst); err != nil {
			httpx.WriteError(w, h.logger, invalidJSON(f.key))
			return
		}
	}

	s, err := h.uc.CreateStore(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, s)
}

func (h *StoreHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.uc.ListStores(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	form, files, err := h.parse(w, r)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	input := &dto.UpdateStoreInput{
		ID:          chi.URLParam(r, "id"),
		StoreName:   form.GetPtr("storeName"),
		Category:    form.GetPtr("category"),
		Description: form.GetPtr("description"),
		Plan:        form.GetPtr("plan"),
		Review:      form.GetPtr("review"),
		AboutMe:     form.GetPtr("aboutMe"),
		PhoneNumber: form.GetPtr("phoneNumber"),
		WebsiteLink: form.GetPtr("websiteLink"),
		Files:       files,
	}

	var (
		location model.Location
		social   model.SocialMediaLinks
		services model.StoreItems
		products model.StoreItems
	)
	for _, f := range []struct {
		key string
		dst any
		set func()
	}{
		{"location", &location, func() { input.Location = &location }},
		{"socialMediaLinks", &social, func() { input.SocialMediaLinks = &social }},
		{"services", &services, func() { input.Services = &services }},
		{"products", &products, func() { input.Products = &products }},
	} {
		ok, err := form.JSON(f.key, f.dst)
		if err != nil {
			httpx.WriteError(w, h.logger, invalidJSON(f.key))
			return
		}
		if ok {
			f.set()
		}
	}

	s, err := h.uc.UpdateStore(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, "Store updated successfully", "store", s)
}

func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteStore(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Store deleted successfully")
}

func (h *StoreHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	h.deleteItem(w, r, dto.Services, "Service deleted successfully")
}

func (h *StoreHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteItem(w, r, dto.Products, "Product deleted successfully")
}

func (h *StoreHandler) deleteItem(w http.ResponseWriter, r *http.Request, kind dto.ItemKind, msg string) {
	s, err := h.uc.DeleteItem(r.Context(), chi.URLParam(r, "id"), kind, chi.URLParam(r, "ref"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, msg, "store", s)
}

func (h *StoreHandler) parse(w http.ResponseWriter, r *http.Request) (*httpx.Form, attachment.Files, error) {
	form, err := httpx.ParseForm(w, r, h.maxBytes)
	if err != nil {
		return nil, nil, err
	}
	files, err := h.uploads.Collect(r.Context(), form.Multipart)
	if err != nil {
		return nil, nil, err
	}
	return form, files, nil
}

func invalidJSON(field string) error {
	return apperror.Validation("Invalid JSON format in " + field)
}
