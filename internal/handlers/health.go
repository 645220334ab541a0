package handlers

import "net/http"

const version = "1.0.0"

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}
