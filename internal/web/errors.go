package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/capitolyouth/admin/internal/logging"
	"github.com/capitolyouth/admin/internal/roster"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError maps a service error onto an HTTP status and writes the JSON
// error body. Unclassified errors become 500 with a generic message so
// internals never leak to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch roster.KindOf(err) {
	case roster.KindBadRequest:
		status = http.StatusBadRequest
	case roster.KindNotFound:
		status = http.StatusNotFound
	case roster.KindForbidden:
		status = http.StatusForbidden
	}

	logger := logging.FromContext(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: "internal server error", Code: "internal"})
		return
	}

	logger.Warn("request rejected",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: roster.CodeOf(err)})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
