package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumina/backend/internal/metrics"
	"github.com/lumina/backend/internal/notify"
	"github.com/lumina/backend/internal/validation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

// NewContactService creates a ContactService that delivers through notifier.
func NewContactService(notifier notify.Notifier, m *metrics.Metrics) ContactService {
	return &contactServiceImpl{notifier: notifier, metrics: m}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in validation.ContactInput) error {
	c, err := validation.Contact(in)
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues("contact", metrics.OutcomeRejected).Inc()
		return err
	}

	if err := s.notifier.ContactReceived(ctx, c); err != nil {
		slog.ErrorContext(ctx, "contact enquiry delivery failed", "error", err)
		s.metrics.SubmissionsTotal.WithLabelValues("contact", metrics.OutcomeFailed).Inc()
		s.metrics.NotificationFailures.WithLabelValues("contact").Inc()
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.metrics.SubmissionsTotal.WithLabelValues("contact", metrics.OutcomeStored).Inc()
	return nil
}
