package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumina/backend/internal/fallback"
	"github.com/lumina/backend/internal/metrics"
	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/notify"
	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/internal/validation"
	"github.com/lumina/backend/pkg/whatsapp"
)

// Studio identifies the studio in the WhatsApp follow-up message.
type Studio struct {
	Name           string
	WhatsAppNumber string
}

// bookingServiceImpl is the production implementation of BookingService.
type bookingServiceImpl struct {
	repo     repository.BookingRepository
	store    *fallback.Store
	notifier notify.Notifier
	studio   Studio
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string
}

// NewBookingService creates a BookingService. store receives writes the
// durable repository rejects; its current size seeds the fallback gauge.
func NewBookingService(
	repo repository.BookingRepository,
	store *fallback.Store,
	notifier notify.Notifier,
	studio Studio,
	m *metrics.Metrics,
) BookingService {
	m.FallbackBookings.Set(float64(store.Len()))
	return &bookingServiceImpl{
		repo:     repo,
		store:    store,
		notifier: notifier,
		studio:   studio,
		metrics:  m,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *bookingServiceImpl) Submit(ctx context.Context, in validation.BookingInput) (*SubmitResult, error) {
	b, err := validation.Booking(in)
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues("booking", metrics.OutcomeRejected).Inc()
		return nil, err
	}

	now := s.now().UTC()
	b.ID = s.newID()
	b.Status = model.BookingStatusNew
	b.CreatedAt = now
	b.UpdatedAt = now

	res := &SubmitResult{}
	if err := s.repo.Create(ctx, b); err != nil {
		slog.WarnContext(ctx, "booking persist failed, using fallback store", "booking_id", b.ID, "error", err)
		b = s.store.Add(b)
		res.Fallback = true
		s.metrics.SubmissionsTotal.WithLabelValues("booking", metrics.OutcomeFallback).Inc()
		s.metrics.FallbackTotal.WithLabelValues("booking_create").Inc()
		s.metrics.FallbackBookings.Set(float64(s.store.Len()))
	} else {
		s.metrics.SubmissionsTotal.WithLabelValues("booking", metrics.OutcomeStored).Inc()
	}
	res.Booking = b

	if err := s.notifier.BookingReceived(ctx, b); err != nil {
		slog.ErrorContext(ctx, "booking notification failed", "booking_id", b.ID, "error", err)
		s.metrics.NotificationFailures.WithLabelValues("booking").Inc()
	} else {
		res.Notified = true
	}

	link, err := whatsapp.BuildLink(s.studio.WhatsAppNumber, fmt.Sprintf(
		"Hi %s, %s submitted a booking enquiry for %s.",
		s.studio.Name, b.CoupleName, b.EventDate.Format(time.DateOnly)))
	if err != nil {
		slog.ErrorContext(ctx, "whatsapp link failed", "error", err)
	}
	res.WhatsAppLink = link

	return res, nil
}

func (s *bookingServiceImpl) ListAll(ctx context.Context, filter model.BookingFilter) (*BookingList, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err == nil {
		return &BookingList{Bookings: bookings}, nil
	}

	slog.WarnContext(ctx, "booking list failed, serving fallback store", "error", err)
	s.metrics.FallbackTotal.WithLabelValues("booking_list").Inc()
	return &BookingList{Bookings: s.store.List(filter), Fallback: true}, nil
}

func (s *bookingServiceImpl) Get(ctx context.Context, id string) (*BookingDetail, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	b, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return &BookingDetail{Booking: b}, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	slog.WarnContext(ctx, "booking lookup failed, using fallback store", "booking_id", id, "error", err)
	s.metrics.FallbackTotal.WithLabelValues("booking_get").Inc()
	b = s.store.FindByID(id)
	if b == nil {
		return nil, repository.ErrNotFound
	}
	return &BookingDetail{Booking: b, Fallback: true}, nil
}

func (s *bookingServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*StatusUpdate, error) {
	st, err := model.ParseBookingStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	// Every id is a UUID; anything else cannot exist in either store.
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	b, err := s.repo.UpdateStatus(ctx, id, st)
	if err == nil {
		return &StatusUpdate{Booking: b}, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	slog.WarnContext(ctx, "booking status update failed, using fallback store", "booking_id", id, "error", err)
	s.metrics.FallbackTotal.WithLabelValues("booking_update").Inc()
	b = s.store.UpdateStatus(id, st)
	if b == nil {
		return nil, repository.ErrNotFound
	}
	return &StatusUpdate{Booking: b, Fallback: true}, nil
}
