package stubapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the wrapper every response uses; clients branch on Success
// rather than on the HTTP status alone.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeSuccess writes a success envelope
func writeSuccess(w http.ResponseWriter, status int, message string, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := envelope{Success: true, Message: message, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// writeFailure writes a failure envelope
func writeFailure(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := envelope{Success: false, Message: message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
