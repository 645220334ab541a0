package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/config"
	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type WishHandler struct {
	Service  *services.WishService
	Uploads  *services.UploadService
	Config   *config.Config
	validate *validator.Validate
}

func NewWishHandler(service *services.WishService, uploads *services.UploadService, cfg *config.Config) *WishHandler {
	return &WishHandler{
		Service:  service,
		Uploads:  uploads,
		Config:   cfg,
		validate: validator.New(),
	}
}

type createWishRequest struct {
	Title     string     `json:"title" validate:"max=200"`
	Message   string     `json:"message" validate:"required"`
	Theme     string     `json:"theme" validate:"max=50"`
	ExpiresAt *time.Time `json:"expires_at"`
	MaxViews  *int       `json:"max_views" validate:"omitempty,gt=0"`
}

type createWishResponse struct {
	Slug      string `json:"slug"`
	PublicURL string `json:"public_url"`
}

type wishResponse struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title,omitempty"`
	Message        string    `json:"message"`
	Theme          string    `json:"theme,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	RemainingViews *int      `json:"remaining_views"`
	Images         []string  `json:"images"`
}

// CreateWishHandler handles creation of a new wish
func (h *WishHandler) CreateWishHandler(w http.ResponseWriter, r *http.Request) {
	var req createWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	wish := &models.Wish{
		Title:     req.Title,
		Message:   req.Message,
		Theme:     req.Theme,
		ExpiresAt: req.ExpiresAt,
		MaxViews:  req.MaxViews,
	}

	created, err := h.Service.CreateWish(r.Context(), wish)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, createWishResponse{
		Slug:      created.Slug,
		PublicURL: fmt.Sprintf("%s/w/%s", h.Config.BaseURL, created.Slug),
	})
}

// GetWishHandler serves a wish to a viewer. Every successful response
// counts as a view and may be the one that uses the wish up.
func (h *WishHandler) GetWishHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	wish, err := h.Service.ViewWish(r.Context(), slug, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	urls, err := h.imageURLs(r, slug)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishResponse{
		Slug:           wish.Slug,
		Title:          wish.Title,
		Message:        wish.Message,
		Theme:          wish.Theme,
		CreatedAt:      wish.CreatedAt,
		RemainingViews: services.RemainingViews(wish),
		Images:         urls,
	})
}

// GetStatusHandler reports active/gone without consuming a view.
func (h *WishHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	status, err := h.Service.GetStatus(r.Context(), slug, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

// DeleteWishHandler soft-deletes a wish on user request.
func (h *WishHandler) DeleteWishHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	if err := h.Service.DeleteWish(r.Context(), slug, time.Now()); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishHandler) imageURLs(r *http.Request, slug string) ([]string, error) {
	images, err := h.Uploads.ListImages(r.Context(), slug)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, h.Config.MediaURL()+"/"+img.Path)
	}
	return urls, nil
}
