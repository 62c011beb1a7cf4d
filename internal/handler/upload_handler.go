package handler

import (
	"log/slog"
	"net/http"

	"github.com/lumina/backend/pkg/cloudinary"
)

// UploadHandler signs direct-to-CDN uploads for the admin panel.
type UploadHandler struct {
	signer cloudinary.Signer
}

func NewUploadHandler(signer cloudinary.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// Sign handles POST /api/cloudinary-sign (admin only).
func (h *UploadHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var p cloudinary.UploadParams
	if !decodeJSON(w, r, &p) {
		return
	}

	sig, err := h.signer.CreateUploadSignature(p)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate cloudinary signature", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to generate signature.")
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Data: sig})
}
