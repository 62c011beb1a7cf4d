package service

import (
	"context"
	"errors"

	"github.com/lumina/backend/internal/validation"
)

// ErrDeliveryFailed is returned when a contact enquiry could not be emailed.
// Nothing is stored, so the visitor has to retry.
var ErrDeliveryFailed = errors.New("enquiry delivery failed")

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in and emails it to the studio. Validation failures
	// are returned as *validation.Error, transport failures wrap
	// ErrDeliveryFailed.
	Submit(ctx context.Context, in validation.ContactInput) error
}
