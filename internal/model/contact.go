package model

// ContactSubmission is a general enquiry from the contact form. It is never
// persisted; it lives only long enough to be validated and emailed.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}
