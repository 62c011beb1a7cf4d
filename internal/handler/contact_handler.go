package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lumina/backend/internal/service"
	"github.com/lumina/backend/internal/validation"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact. Enquiries are emailed, not stored, so
// a delivery failure is reported as 503 and the visitor retries.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in validation.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.contactService.Submit(r.Context(), in); err != nil {
		if writeValidation(w, err) {
			return
		}
		if errors.Is(err, service.ErrDeliveryFailed) {
			writeError(w, http.StatusServiceUnavailable, "Unable to send enquiry at this time. Please try again later.")
			return
		}
		slog.ErrorContext(r.Context(), "contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to send enquiry at this time. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Enquiry sent successfully."})
}
