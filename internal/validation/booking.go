package validation

import (
	"strings"

	"github.com/lumina/backend/internal/model"
)

// BookingInput is the raw booking enquiry payload.
type BookingInput struct {
	CoupleName         string   `json:"coupleName" validate:"required,min=2"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	EventDate          string   `json:"eventDate" validate:"required,eventdate"`
	EventLocation      string   `json:"eventLocation" validate:"required,min=3"`
	ServicesInterested []string `json:"servicesInterested" validate:"min=1"`
	Message            string   `json:"message" validate:"max=1500"`
}

var bookingMessages = map[string]string{
	"coupleName":         "Please provide full names.",
	"email":              "Enter a valid email address.",
	"phone":              "Provide a valid phone number.",
	"eventDate.required": "Event date is required.",
	"eventDate":          "Enter a valid event date.",
	"eventLocation":      "Location must be at least 3 characters.",
	"servicesInterested": "Select at least one service.",
	"message":            "Message is too long (max 1500 characters).",
}

// Booking validates in and returns the normalised booking fields. ID, status
// and timestamps are left for the caller to assign.
func Booking(in BookingInput) (*model.Booking, error) {
	in.CoupleName = strings.TrimSpace(in.CoupleName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventLocation = strings.TrimSpace(in.EventLocation)
	in.ServicesInterested = trimFields(in.ServicesInterested)
	in.Message = strings.TrimSpace(in.Message)

	if verr := check(in, bookingMessages); verr != nil {
		return nil, verr
	}

	eventDate, _ := ParseEventDate(in.EventDate)
	return &model.Booking{
		CoupleName:         in.CoupleName,
		Email:              in.Email,
		Phone:              in.Phone,
		EventDate:          eventDate,
		EventLocation:      in.EventLocation,
		ServicesInterested: in.ServicesInterested,
		Message:            in.Message,
	}, nil
}
