package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lumina/backend/pkg/whatsapp"
)

// WhatsAppHandler renders the studio click-to-chat QR code.
type WhatsAppHandler struct {
	link string
}

// NewWhatsAppHandler builds the chat link once. It fails when number is
// not in E.164 form.
func NewWhatsAppHandler(studioName, number string) (*WhatsAppHandler, error) {
	link, err := whatsapp.BuildLink(number,
		"Hi "+studioName+"! We're excited to inquire about photography services.")
	if err != nil {
		return nil, err
	}
	return &WhatsAppHandler{link: link}, nil
}

// QR handles GET /api/whatsapp/qr?size=N and returns a PNG.
func (h *WhatsAppHandler) QR(w http.ResponseWriter, r *http.Request) {
	size := whatsapp.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < whatsapp.MinQRSize || n > whatsapp.MaxQRSize {
			writeError(w, http.StatusBadRequest, "size must be between 128 and 1024.")
			return
		}
		size = n
	}

	png, err := whatsapp.QRCode(h.link, size)
	if err != nil {
		slog.ErrorContext(r.Context(), "qr render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to render QR code.")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
