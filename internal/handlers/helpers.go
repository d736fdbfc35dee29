package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// SuccessResponse is the envelope returned for a processed order
type SuccessResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber"`
}

// ErrorResponse is the envelope returned for any failure. Details carries
// diagnostic detail and is only populated outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error envelope
func WriteError(w http.ResponseWriter, status int, message, details string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	}, logger)
}
