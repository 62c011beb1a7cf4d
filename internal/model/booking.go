package model

import (
	"fmt"
	"time"
)

// BookingStatus is the admin-facing lifecycle state of a booking enquiry.
type BookingStatus string

const (
	BookingStatusNew        BookingStatus = "new"
	BookingStatusViewed     BookingStatus = "viewed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusArchived   BookingStatus = "archived"
)

// BookingStatuses lists every recognised status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingStatusNew,
	BookingStatusViewed,
	BookingStatusInProgress,
	BookingStatusConfirmed,
	BookingStatusArchived,
}

// Valid reports whether s is one of the five recognised statuses.
func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts raw into a BookingStatus, rejecting anything
// outside the closed set.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

// Booking is a prospective client's enquiry.
type Booking struct {
	ID                 string        `json:"id" yaml:"id"`
	CoupleName         string        `json:"coupleName" yaml:"coupleName"`
	Email              string        `json:"email" yaml:"email"`
	Phone              string        `json:"phone,omitempty" yaml:"phone"`
	EventDate          time.Time     `json:"eventDate" yaml:"eventDate"`
	EventLocation      string        `json:"eventLocation" yaml:"eventLocation"`
	ServicesInterested []string      `json:"servicesInterested" yaml:"servicesInterested"`
	Message            string        `json:"message,omitempty" yaml:"message"`
	Status             BookingStatus `json:"status" yaml:"status"`
	CreatedAt          time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (b *Booking) Clone() *Booking {
	c := *b
	c.ServicesInterested = append([]string(nil), b.ServicesInterested...)
	return &c
}

// BookingFilter narrows a booking listing. The zero value matches everything.
type BookingFilter struct {
	Status BookingStatus
}

// Match reports whether b passes the filter.
func (f BookingFilter) Match(b *Booking) bool {
	return f.Status == "" || b.Status == f.Status
}
