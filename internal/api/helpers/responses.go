package helpers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

// RespondError writes an error response with the given status code and message.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{
		"error": message,
	})
}

// RespondStatus writes {"status": status}.
func RespondStatus(w http.ResponseWriter, code int, status string) {
	RespondJSON(w, code, map[string]string{
		"status": status,
	})
}
