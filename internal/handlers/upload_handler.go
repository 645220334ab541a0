package handlers

import (
	"net/http"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/config"
	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UploadHandler struct {
	Uploads *services.UploadService
	Config  *config.Config
}

func NewUploadHandler(uploads *services.UploadService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		Uploads: uploads,
		Config:  cfg,
	}
}

type imageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UploadImageHandler accepts one multipart image for a wish.
func (h *UploadHandler) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	// Memory threshold only; larger uploads spill to a temp file and the
	// pipeline enforces the real size ceiling.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "Missing file in request"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	image, err := h.Uploads.UploadImage(r.Context(), slug, file, header.Filename, contentType, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, h.toResponse(image))
}

// DeleteImageHandler removes a single image from a wish.
func (h *UploadHandler) DeleteImageHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	imageID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Image not found"})
		return
	}

	if err := h.Uploads.DeleteImage(r.Context(), slug, imageID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListImagesHandler returns the public URLs of a wish's images.
func (h *UploadHandler) ListImagesHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	images, err := h.Uploads.ListImages(r.Context(), slug)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]imageResponse, 0, len(images))
	for i := range images {
		out = append(out, h.toResponse(&images[i]))
	}

	respondJSON(w, http.StatusOK, out)
}

func (h *UploadHandler) toResponse(image *models.WishImage) imageResponse {
	return imageResponse{
		ID:  image.ID.Hex(),
		URL: h.Config.MediaURL() + "/" + image.Path,
	}
}
