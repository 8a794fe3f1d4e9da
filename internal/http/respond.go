package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Weryck-Lemos/ElectroStock/internal/api"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleUpstreamError maps the API client's error taxonomy onto HTTP. An
// application-level failure keeps the upstream status and its normalized
// detail; a connection failure becomes 502 with the generic message. Neither
// is retried.
func handleUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.StatusCode, "upstream_error", apiErr.Detail)
		return
	}

	var connErr *api.ConnectionError
	if errors.As(err, &connErr) {
		respondError(w, http.StatusBadGateway, "connection_error", "connection error")
		return
	}

	log.Printf("unexpected error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
