package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		obs.Logger.Error("write_response_failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, ErrorResponse{Message: message})
}

// respondInternal logs err and answers with a generic 500.
func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	obs.Logger.Error("request_failed",
		"path", r.URL.Path,
		"error", err,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	respondError(w, r, http.StatusInternalServerError, message)
}
