// Package notify tells the studio about new enquiries: an email to the
// studio inbox and, when configured, a Telegram ping.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/pkg/gmail"
)

// Notifier announces new enquiries to the studio.
type Notifier interface {
	BookingReceived(ctx context.Context, b *model.Booking) error
	ContactReceived(ctx context.Context, c *model.ContactSubmission) error
}

// Pinger sends a short plain-text alert to a secondary channel.
type Pinger interface {
	Ping(ctx context.Context, text string) error
}

// Dispatcher implements Notifier. Email failures are returned; ping
// failures are only logged.
type Dispatcher struct {
	mailer gmail.Sender
	to     string
	pinger Pinger
}

var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher that mails the studio at to. pinger
// may be nil.
func NewDispatcher(mailer gmail.Sender, to string, pinger Pinger) *Dispatcher {
	return &Dispatcher{mailer: mailer, to: to, pinger: pinger}
}

// BookingSubject is the subject line of the booking notification.
func BookingSubject(b *model.Booking) string {
	return "New booking enquiry from " + b.CoupleName
}

// ContactSubject is the subject line of the contact notification.
func ContactSubject(c *model.ContactSubmission) string {
	return "Contact enquiry from " + c.Name
}

// BookingMessage renders the booking email.
func (d *Dispatcher) BookingMessage(b *model.Booking) (gmail.Message, error) {
	view := newBookingView(b)
	text, err := render(bookingText, view)
	if err != nil {
		return gmail.Message{}, fmt.Errorf("notify: render booking text: %w", err)
	}
	html, err := render(bookingHTML, view)
	if err != nil {
		return gmail.Message{}, fmt.Errorf("notify: render booking html: %w", err)
	}
	return gmail.Message{
		To:      []string{d.to},
		Subject: BookingSubject(b),
		Text:    text,
		HTML:    html,
		ReplyTo: b.Email,
	}, nil
}

// ContactMessage renders the contact email.
func (d *Dispatcher) ContactMessage(c *model.ContactSubmission) (gmail.Message, error) {
	text, err := render(contactText, c)
	if err != nil {
		return gmail.Message{}, fmt.Errorf("notify: render contact text: %w", err)
	}
	html, err := render(contactHTML, c)
	if err != nil {
		return gmail.Message{}, fmt.Errorf("notify: render contact html: %w", err)
	}
	return gmail.Message{
		To:      []string{d.to},
		Subject: ContactSubject(c),
		Text:    text,
		HTML:    html,
		ReplyTo: c.Email,
	}, nil
}

func (d *Dispatcher) BookingReceived(ctx context.Context, b *model.Booking) error {
	msg, err := d.BookingMessage(b)
	if err != nil {
		return err
	}
	d.ping(ctx, fmt.Sprintf("📸 %s\n%s · %s\n%s",
		BookingSubject(b), b.EventDate.Format(dateLayout), b.EventLocation, b.Email))
	return d.mailer.Send(ctx, msg)
}

func (d *Dispatcher) ContactReceived(ctx context.Context, c *model.ContactSubmission) error {
	msg, err := d.ContactMessage(c)
	if err != nil {
		return err
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		return err
	}
	d.ping(ctx, fmt.Sprintf("✉️ %s\n%s", ContactSubject(c), c.Email))
	return nil
}

func (d *Dispatcher) ping(ctx context.Context, text string) {
	if d.pinger == nil {
		return
	}
	if err := d.pinger.Ping(ctx, text); err != nil {
		slog.WarnContext(ctx, "telegram ping failed", "error", err)
	}
}
