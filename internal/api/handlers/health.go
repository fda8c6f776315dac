package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler provides a minimal liveness check endpoint.
type HealthHandler struct {
	Logger *zap.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}
