package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "progression-engine/pkg/errors"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Data any `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondEngineError maps engine error codes to HTTP status codes. Invalid
// claims come back as client errors the caller can present to the player;
// store and issuance failures stay server-side errors.
func respondEngineError(w http.ResponseWriter, err error) {
	var engineErr *apperrors.EngineError
	if !errors.As(err, &engineErr) {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch engineErr.Code {
	case apperrors.ErrCodeDefinitionNotFound, apperrors.ErrCodeProgressNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeAlreadyClaimed:
		status = http.StatusConflict
	case apperrors.ErrCodeNotCompleted, apperrors.ErrCodeInvalidStatus,
		apperrors.ErrCodeValidationFailed, apperrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.ErrCodeRewardGrantFailed:
		status = http.StatusBadGateway
	case apperrors.ErrCodeBonusTemplateNotFound, apperrors.ErrCodeRewardNotConfigured:
		status = http.StatusUnprocessableEntity
	}

	respondJSON(w, status, ErrorResponse{Error: engineErr.Message, Code: engineErr.Code})
}
