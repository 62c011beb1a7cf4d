package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lumina/backend/internal/export"
	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/internal/service"
	"github.com/lumina/backend/internal/validation"
)

// BookingHandler handles booking submission and the admin booking panel.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a BookingHandler with the given service.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type submitBookingResponse struct {
	ID           string `json:"id"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
	Notified     bool   `json:"notified"`
	Fallback     bool   `json:"fallback,omitempty"`
}

// Submit handles POST /api/bookings. A booking absorbed by the fallback
// store is answered with 202 and data.fallback=true.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in validation.BookingInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := h.bookingService.Submit(r.Context(), in)
	if err != nil {
		if writeValidation(w, err) {
			return
		}
		slog.ErrorContext(r.Context(), "booking submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to submit booking.")
		return
	}

	status := http.StatusOK
	if res.Fallback {
		status = http.StatusAccepted
	}
	writeJSON(w, status, dataResponse{Data: submitBookingResponse{
		ID:           res.Booking.ID,
		WhatsAppLink: res.WhatsAppLink,
		Notified:     res.Notified,
		Fallback:     res.Fallback,
	}})
}

// parseFilter reads the optional ?status= query parameter. It writes 422
// and returns false for unknown statuses.
func parseFilter(w http.ResponseWriter, r *http.Request) (model.BookingFilter, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return model.BookingFilter{}, true
	}
	st, err := model.ParseBookingStatus(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid status.")
		return model.BookingFilter{}, false
	}
	return model.BookingFilter{Status: st}, true
}

// AdminList handles GET /api/bookings/admin.
func (h *BookingHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	list, err := h.bookingService.ListAll(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "booking list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to load bookings.")
		return
	}

	bookings := list.Bookings
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: bookings, Fallback: list.Fallback})
}

// AdminGet handles GET /api/bookings/admin/{id}.
func (h *BookingHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.bookingService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found.")
			return
		}
		slog.ErrorContext(r.Context(), "booking get failed", "booking_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to load booking.")
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Data: res.Booking, Fallback: res.Fallback})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AdminUpdateStatus handles PATCH /api/bookings/admin.
func (h *BookingHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, "id and status are required.")
		return
	}

	res, err := h.bookingService.UpdateStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusUnprocessableEntity, "Invalid status.")
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Booking not found.")
		default:
			slog.ErrorContext(r.Context(), "booking status update failed", "booking_id", req.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Unable to update booking.")
		}
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Data: res.Booking, Fallback: res.Fallback})
}

// AdminExport handles GET /api/bookings/admin/export. The workbook reflects
// whichever store answered; X-Fallback marks a degraded export.
func (h *BookingHandler) AdminExport(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	list, err := h.bookingService.ListAll(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "booking export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to export bookings.")
		return
	}

	var buf bytes.Buffer
	if err := export.Bookings(&buf, list.Bookings); err != nil {
		slog.ErrorContext(r.Context(), "booking export render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to export bookings.")
		return
	}

	filename := "bookings-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if list.Fallback {
		w.Header().Set("X-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
