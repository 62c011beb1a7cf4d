package handler

import (
	"log/slog"
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Health reports whether the durable store is reachable. While it is not,
// the API keeps serving from the fallback store, which the response flags.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "health check: database unreachable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "degraded",
			Message:  "database unreachable",
			Fallback: true,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "Lumina API",
	})
}
