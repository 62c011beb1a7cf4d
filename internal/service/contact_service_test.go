package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumina/backend/internal/metrics"
	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/validation"
)

func validContact() validation.ContactInput {
	return validation.ContactInput{
		Name:    "Asha",
		Email:   "asha@example.com",
		Message: "Do you travel to Bali for weddings?",
	}
}

func TestContactService_Submit_SendsEmail(t *testing.T) {
	notifier := &mockNotifier{}
	svc := NewContactService(notifier, metrics.NewNop())

	if err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.contacts) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.contacts))
	}
	if notifier.contacts[0].Name != "Asha" {
		t.Errorf("unexpected contact %+v", notifier.contacts[0])
	}
}

func TestContactService_Submit_ValidationError(t *testing.T) {
	notifier := &mockNotifier{}
	svc := NewContactService(notifier, metrics.NewNop())

	in := validContact()
	in.Message = "too short"
	err := svc.Submit(context.Background(), in)

	var verr *validation.Error
	if !errors.As(err, &verr) || !verr.Has("message") {
		t.Fatalf("expected message validation error, got %v", err)
	}
	if len(notifier.contacts) != 0 {
		t.Error("invalid enquiries must not be sent")
	}
}

func TestContactService_Submit_DeliveryFailure(t *testing.T) {
	notifier := &mockNotifier{contactFunc: func(ctx context.Context, c *model.ContactSubmission) error {
		return errors.New("gmail: send: status 503")
	}}
	svc := NewContactService(notifier, metrics.NewNop())

	err := svc.Submit(context.Background(), validContact())
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Errorf("expected ErrDeliveryFailed, got %v", err)
	}
}
