package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/example/storefront/internal/domain"
	logx "github.com/example/storefront/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCatalogError maps catalog source failures to HTTP statuses.
func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "catalog temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "catalog request timed out")
	default:
		logx.Error().Err(err).Msg("catalog request failed")
		respondError(w, http.StatusBadGateway, "catalog_error", "failed to load catalog data")
	}
}
