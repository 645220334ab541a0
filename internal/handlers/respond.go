package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/sirupsen/logrus"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is an internal error; slug exhaustion is operational and
// lands there too.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrGone):
		status = http.StatusGone
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrProcessing):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrStorageExhausted):
		status = http.StatusInsufficientStorage
	default:
		logrus.WithError(err).Error("Internal error")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
		return
	}

	respondJSON(w, status, map[string]string{"detail": err.Error()})
}
