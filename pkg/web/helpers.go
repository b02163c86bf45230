// Package web holds HTTP helpers shared by the REST transports.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocrud/pkg/record"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondText writes message as a plain text body, without the trailing newline http.Error adds.
func RespondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// PathID extracts the "id" path parameter in its canonical int64 form.
// ok is false when the parameter can never denote a stored id.
func PathID(r *http.Request) (raw string, id int64, ok bool) {
	raw = r.PathValue("id")
	id, ok = record.NormalizeID(raw)
	return raw, id, ok
}
