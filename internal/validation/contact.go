package validation

import (
	"strings"

	"github.com/lumina/backend/internal/model"
)

// ContactInput is the raw contact form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

var contactMessages = map[string]string{
	"name":        "Please enter your full name.",
	"email":       "Enter a valid email address.",
	"phone":       "Provide a valid phone number.",
	"message":     "Please share a few details about your enquiry.",
	"message.max": "Message is too long (max 5000 characters).",
}

// Contact validates in and returns the normalised submission.
func Contact(in ContactInput) (*model.ContactSubmission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)

	if verr := check(in, contactMessages); verr != nil {
		return nil, verr
	}
	return &model.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}, nil
}
