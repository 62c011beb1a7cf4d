package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/pkg/gmail"
)

type mockMailer struct {
	sendFunc func(ctx context.Context, msg gmail.Message) error
	sent     []gmail.Message
}

func (m *mockMailer) Send(ctx context.Context, msg gmail.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return nil
}

type mockPinger struct {
	pingFunc func(ctx context.Context, text string) error
	texts    []string
}

func (m *mockPinger) Ping(ctx context.Context, text string) error {
	m.texts = append(m.texts, text)
	if m.pingFunc != nil {
		return m.pingFunc(ctx, text)
	}
	return nil
}

func sampleBooking() *model.Booking {
	return &model.Booking{
		ID:                 "b-1",
		CoupleName:         "Mira & Dev",
		Email:              "mira@example.com",
		EventDate:          time.Date(2026, 12, 12, 0, 0, 0, 0, time.UTC),
		EventLocation:      "Goa",
		ServicesInterested: []string{"Signature Wedding Weekend", "Cinematic Film"},
		Message:            "Line one\nLine two",
		Status:             model.BookingStatusNew,
	}
}

func TestDispatcher_BookingReceived(t *testing.T) {
	mailer := &mockMailer{}
	pinger := &mockPinger{}
	d := NewDispatcher(mailer, "studio@example.com", pinger)

	if err := d.BookingReceived(context.Background(), sampleBooking()); err != nil {
		t.Fatalf("BookingReceived: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Subject != "New booking enquiry from Mira & Dev" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if msg.ReplyTo != "mira@example.com" || msg.To[0] != "studio@example.com" {
		t.Errorf("unexpected addressing: %+v", msg)
	}
	for _, want := range []string{
		"Couple: Mira & Dev",
		"Phone: N/A",
		"Event Date: 2026-12-12",
		"Services Interested: Signature Wedding Weekend, Cinematic Film",
		"Line one\nLine two",
	} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("text body missing %q:\n%s", want, msg.Text)
		}
	}
	if !strings.Contains(msg.HTML, "Mira &amp; Dev") {
		t.Errorf("html body should escape ampersand:\n%s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "Line one<br/>Line two") {
		t.Errorf("html body should break lines:\n%s", msg.HTML)
	}
	if len(pinger.texts) != 1 || !strings.Contains(pinger.texts[0], "Mira & Dev") {
		t.Errorf("unexpected pings %v", pinger.texts)
	}
}

func TestDispatcher_BookingHTMLEscapesInput(t *testing.T) {
	d := NewDispatcher(&mockMailer{}, "studio@example.com", nil)
	b := sampleBooking()
	b.CoupleName = `<script>alert("x")</script>`
	b.Message = ""

	msg, err := d.BookingMessage(b)
	if err != nil {
		t.Fatalf("BookingMessage: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Errorf("html body contains raw script tag:\n%s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "(none)") || !strings.Contains(msg.Text, "(none)") {
		t.Error("empty message should render as (none)")
	}
}

func TestDispatcher_BookingMailFailure(t *testing.T) {
	sendErr := errors.New("quota exceeded")
	mailer := &mockMailer{sendFunc: func(ctx context.Context, msg gmail.Message) error { return sendErr }}
	d := NewDispatcher(mailer, "studio@example.com", nil)

	if err := d.BookingReceived(context.Background(), sampleBooking()); !errors.Is(err, sendErr) {
		t.Errorf("expected send error, got %v", err)
	}
}

func TestDispatcher_PingFailureIsNotFatal(t *testing.T) {
	pinger := &mockPinger{pingFunc: func(ctx context.Context, text string) error {
		return errors.New("bot blocked")
	}}
	d := NewDispatcher(&mockMailer{}, "studio@example.com", pinger)

	if err := d.ContactReceived(context.Background(), &model.ContactSubmission{
		Name: "Asha", Email: "asha@example.com", Message: "Hello there, are you free?",
	}); err != nil {
		t.Errorf("expected ping failure to be swallowed, got %v", err)
	}
}

func TestDispatcher_ContactReceived(t *testing.T) {
	mailer := &mockMailer{}
	pinger := &mockPinger{}
	d := NewDispatcher(mailer, "studio@example.com", pinger)

	c := &model.ContactSubmission{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "+91 98765 43210",
		Message: "Do you travel to Bali?\nThanks!",
	}
	if err := d.ContactReceived(context.Background(), c); err != nil {
		t.Fatalf("ContactReceived: %v", err)
	}
	msg := mailer.sent[0]
	if msg.Subject != "Contact enquiry from Asha" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "Phone: +91 98765 43210") {
		t.Errorf("text body missing phone:\n%s", msg.Text)
	}
	if !strings.Contains(msg.HTML, "Do you travel to Bali?<br/>Thanks!") {
		t.Errorf("html body missing message:\n%s", msg.HTML)
	}
	if len(pinger.texts) != 1 {
		t.Errorf("expected 1 ping, got %d", len(pinger.texts))
	}
}

func TestDispatcher_ContactMailFailureSkipsPing(t *testing.T) {
	mailer := &mockMailer{sendFunc: func(ctx context.Context, msg gmail.Message) error {
		return errors.New("smtp down")
	}}
	pinger := &mockPinger{}
	d := NewDispatcher(mailer, "studio@example.com", pinger)

	err := d.ContactReceived(context.Background(), &model.ContactSubmission{Name: "Asha", Email: "a@example.com", Message: "0123456789"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(pinger.texts) != 0 {
		t.Error("ping should not be sent when the email failed")
	}
}

type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, b.err
}

func TestTelegramPinger_Ping(t *testing.T) {
	bot := &fakeBot{}
	p := &TelegramPinger{bot: bot, chatID: 42}

	if err := p.Ping(context.Background(), "hello"); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", bot.sent[0])
	}
	if msg.ChatID != 42 || msg.Text != "hello" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestTelegramPinger_CancelledContext(t *testing.T) {
	bot := &fakeBot{}
	p := &TelegramPinger{bot: bot, chatID: 42}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Ping(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(bot.sent) != 0 {
		t.Error("nothing should be sent after cancellation")
	}
}
