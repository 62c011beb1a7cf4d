package service

import (
	"context"
	"errors"

	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/validation"
)

// ErrInvalidStatus is returned when a status update names a value outside
// the booking lifecycle.
var ErrInvalidStatus = errors.New("invalid booking status")

// SubmitResult is the outcome of a booking submission.
type SubmitResult struct {
	Booking      *model.Booking
	WhatsAppLink string
	// Notified is false when the studio email could not be sent. The booking
	// is stored either way.
	Notified bool
	// Fallback is true when the booking went to the in-memory store.
	Fallback bool
}

// BookingList is an admin listing, flagged when served from the fallback store.
type BookingList struct {
	Bookings []*model.Booking
	Fallback bool
}

// StatusUpdate is the booking after a status change.
type StatusUpdate struct {
	Booking  *model.Booking
	Fallback bool
}

// BookingDetail is a single booking read by an admin.
type BookingDetail struct {
	Booking  *model.Booking
	Fallback bool
}

// BookingService defines the booking intake workflow. Callers are expected
// to have checked admin authorization before ListAll, Get and UpdateStatus.
type BookingService interface {
	// Submit validates in, stores the booking (durable store first, then the
	// fallback store) and notifies the studio. Validation failures are
	// returned as *validation.Error.
	Submit(ctx context.Context, in validation.BookingInput) (*SubmitResult, error)

	// ListAll returns bookings newest first.
	ListAll(ctx context.Context, filter model.BookingFilter) (*BookingList, error)

	// Get returns one booking. It returns repository.ErrNotFound when no
	// store holds id.
	Get(ctx context.Context, id string) (*BookingDetail, error)

	// UpdateStatus changes a booking's status. It returns ErrInvalidStatus
	// for unknown statuses and repository.ErrNotFound when no store holds id.
	UpdateStatus(ctx context.Context, id, status string) (*StatusUpdate, error)
}
